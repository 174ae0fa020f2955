package loader

import (
	"fmt"
	"io"

	"github.com/tidwall/gjson"
)

// JSONLoader loads configuration from JSON files. Object order is kept.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{fs: DefaultFS(), path: path}
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) *JSONLoader {
	return &JSONLoader{fs: fs, path: path}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (*Tree, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *JSONLoader) LoadFrom(path string) (*Tree, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *JSONLoader) parse(source string, data []byte) (*Tree, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "top level must be an object"}
	}
	return jsonValue(root).(*Tree), nil
}

func jsonValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		t := NewTree()
		r.ForEach(func(k, v gjson.Result) bool {
			t.Set(k.String(), jsonValue(v))
			return true
		})
		return t
	case r.IsArray():
		items := r.Array()
		out := make([]any, len(items))
		for i, item := range items {
			out[i] = jsonValue(item)
		}
		return out
	}

	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.True, gjson.False:
		return r.Bool()
	case gjson.Number:
		if f := r.Float(); f == float64(int64(f)) {
			return int64(f)
		}
		return r.Float()
	default:
		return nil
	}
}
