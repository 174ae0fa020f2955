package command

import (
	"sort"
	"strings"
	"unicode"
)

// Match is a command name found by Search.
type Match struct {
	Name string

	// Score ranks the match; higher is better.
	Score int

	// Positions are the rune indices of the matched query characters.
	Positions []int
}

// Search returns the commands whose names contain the query's characters
// in order, best first. Matching ignores case. An empty query returns every
// name in sorted order. A limit of zero or less returns all matches.
func (c *Catalog) Search(query string, limit int) []Match {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.search(query, limit)
}

func (c *Catalog) search(query string, limit int) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	q := []rune(query)

	var matches []Match
	for name := range c.byName {
		if len(q) == 0 {
			matches = append(matches, Match{Name: name})
			continue
		}
		if pos := subsequence(q, []rune(strings.ToLower(name))); pos != nil {
			matches = append(matches, Match{
				Name:      name,
				Score:     score(q, []rune(name), pos),
				Positions: pos,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Name < matches[j].Name
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// suggest returns the best match for a mistyped name, or "".
func (c *Catalog) suggest(name string) string {
	if m := c.search(name, 1); len(m) > 0 && len(name) > 0 {
		return m[0].Name
	}
	return ""
}

// subsequence scans text left to right for the query characters and
// returns their positions, or nil when some are missing.
func subsequence(q, text []rune) []int {
	pos := make([]int, 0, len(q))
	qi := 0
	for i := 0; i < len(text) && qi < len(q); i++ {
		if text[i] == q[qi] {
			pos = append(pos, i)
			qi++
		}
	}
	if qi != len(q) {
		return nil
	}
	return pos
}

func score(q, name []rune, pos []int) int {
	s := 100

	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			s += 20
		}
	}
	for _, p := range pos {
		if p == 0 || unicode.IsPunct(name[p-1]) {
			s += 15
		}
	}

	// Gaps and a late start cost points
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		s -= gap * 2
	}
	s -= pos[0]

	if len(name) < 20 {
		s += 20 - len(name)
	}
	if len(pos) == len(q) && pos[len(pos)-1] == len(q)-1 {
		s += 50
	}
	return max(s, 1)
}
