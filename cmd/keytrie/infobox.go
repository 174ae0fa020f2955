package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/keytrie/internal/input/key"
	"github.com/dshills/keytrie/internal/input/keymap"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	groupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// infoRow is one display row of a group listing.
type infoRow struct {
	keys  string
	label string
	group bool
}

// infoboxTitle names a group for display.
func infoboxTitle(g *keymap.Group, prefix key.Sequence) string {
	title := g.Name()
	if title == "" {
		title = prefix.String()
	}
	if title == "" {
		title = "keys"
	}
	if g.Sticky() {
		title += " (sticky)"
	}
	return title
}

func infoRows(g *keymap.Group) ([]infoRow, int) {
	entries := g.Infobox()
	rows := make([]infoRow, len(entries))
	width := 0
	for i, e := range entries {
		label := e.Label
		if e.Group {
			label = "+" + label
		}
		rows[i] = infoRow{keys: e.KeyLabel(), label: label, group: e.Group}
		width = max(width, lipgloss.Width(rows[i].keys))
	}
	return rows, width
}

// infoboxLines renders the listing as plain text lines.
func infoboxLines(g *keymap.Group, prefix key.Sequence) []string {
	rows, width := infoRows(g)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, infoboxTitle(g, prefix))
	for _, r := range rows {
		lines = append(lines, "  "+r.keys+strings.Repeat(" ", width-lipgloss.Width(r.keys))+"  "+r.label)
	}
	return lines
}

// renderInfobox renders the listing as a styled box.
func renderInfobox(g *keymap.Group, prefix key.Sequence) string {
	rows, width := infoRows(g)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, titleStyle.Render(infoboxTitle(g, prefix)))
	if len(rows) == 0 {
		lines = append(lines, dimStyle.Render("no bindings"))
	}
	keyCol := keyStyle.Width(width + 2)
	for _, r := range rows {
		label := r.label
		if r.group {
			label = groupStyle.Render(label)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, keyCol.Render(r.keys), label))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

var matchStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// highlightMatch renders name with the runes at positions emphasized.
func highlightMatch(name string, positions []int) string {
	if len(positions) == 0 {
		return name
	}
	hit := make(map[int]bool, len(positions))
	for _, p := range positions {
		hit[p] = true
	}
	var b strings.Builder
	for i, r := range []rune(name) {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
