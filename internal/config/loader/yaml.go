package loader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLLoader loads configuration from YAML files. Mapping order is kept.
type YAMLLoader struct {
	fs   FileSystem
	path string
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return &YAMLLoader{fs: DefaultFS(), path: path}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fs, path: path}
}

// Load reads configuration from the configured path.
func (l *YAMLLoader) Load() (*Tree, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *YAMLLoader) LoadFrom(path string) (*Tree, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *YAMLLoader) LoadFromReader(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *YAMLLoader) parse(source string, data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		// yaml.v3 reports positions only inside the message
		_, _ = fmt.Sscanf(err.Error(), "yaml: line %d:", &perr.Line)
		return nil, perr
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return NewTree(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return NewTree(), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{
			Path:    source,
			Line:    root.Line,
			Column:  root.Column,
			Message: "top level must be a mapping",
		}
	}

	v, err := yamlValue(source, root)
	if err != nil {
		return nil, err
	}
	return v.(*Tree), nil
}

func yamlValue(source string, n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return yamlValue(source, n.Alias)

	case yaml.MappingNode:
		t := NewTree()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, &ParseError{
					Path:    source,
					Line:    k.Line,
					Column:  k.Column,
					Message: "mapping keys must be scalars",
				}
			}
			val, err := yamlValue(source, v)
			if err != nil {
				return nil, err
			}
			t.Set(k.Value, val)
		}
		return t, nil

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			val, err := yamlValue(source, item)
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return out, nil

	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, &ParseError{
				Path:    source,
				Line:    n.Line,
				Column:  n.Column,
				Message: err.Error(),
				Err:     err,
			}
		}
		return fromValue(v), nil
	}
}
