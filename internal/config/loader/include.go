package loader

import (
	"fmt"
	"path/filepath"
)

// DefaultIncludeDepth bounds nested @include directives.
const DefaultIncludeDepth = 8

// includeKey is the reserved top-level key naming files to merge under
// the including file.
const includeKey = "@include"

// LoadWithIncludes loads path with the loader its extension selects and
// processes @include directives. Included files may use any supported
// format. The maxDepth parameter limits nested includes to prevent
// infinite loops.
func LoadWithIncludes(fsys FileSystem, path string, maxDepth int) (*Tree, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w for %s", ErrIncludeDepthExceeded, path)
	}

	l, err := ForPath(fsys, path)
	if err != nil {
		return nil, err
	}
	config, err := l.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, nil
	}

	includes, hasIncludes := config.Get(includeKey)
	if !hasIncludes {
		return config, nil
	}
	config.Delete(includeKey)

	includeList, err := includePaths(includes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Includes are lower priority than the including file
	baseDir := filepath.Dir(path)
	merged := NewTree()
	for _, inc := range includeList {
		incPath := inc
		if !filepath.IsAbs(inc) {
			incPath = filepath.Join(baseDir, inc)
		}

		incConfig, err := LoadWithIncludes(fsys, incPath, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", incPath, err)
		}
		merged = DeepMerge(merged, incConfig)
	}

	return DeepMerge(merged, config), nil
}

func includePaths(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, ErrInvalidInclude
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrInvalidInclude, v)
	}
}
