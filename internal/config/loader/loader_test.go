package loader

import (
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"config.toml", FormatTOML},
		{"/etc/keytrie/keys.YAML", FormatYAML},
		{"keys.yml", FormatYAML},
		{"keys.json", FormatJSON},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}

	_, err := FormatOf("keys.ini")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[editor]
default_mode = "insert"

[log]
level = "debug"

[keys.normal]
w = "move_next_word_start"
C-s = "save"

[keys.normal.g]
a = "goto_last_accessed_file"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	require.NoError(t, err)

	v, ok := config.Path("editor.default_mode")
	require.True(t, ok)
	assert.Equal(t, "insert", v)

	normal, ok := config.Path("keys.normal")
	require.True(t, ok)
	tree := normal.(*Tree)
	// TOML tables come back sorted
	assert.Equal(t, []string{"C-s", "g", "w"}, tree.Keys())

	g, ok := tree.Table("g")
	require.True(t, ok)
	v, _ = g.Get("a")
	assert.Equal(t, "goto_last_accessed_file", v)
}

func TestTOMLLoader_LoadNonExistent(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[keys.normal\nw = 1\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Positive(t, perr.Line)
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("answer = 42\n"))
	require.NoError(t, err)

	v, ok := config.Get("answer")
	require.True(t, ok)
	assert.Equal(t, int64(42), v)
}

func TestYAMLLoader_PreservesOrder(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/keys.yaml", `
keys:
  normal:
    w: move_next_word_start
    b: move_prev_word_start
    g:
      "@name": Goto
      e: goto_last_line
      a: goto_last_accessed_file
log:
  json: true
  count: 3
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/keys.yaml").Load()
	require.NoError(t, err)

	normal, ok := config.Path("keys.normal")
	require.True(t, ok)
	assert.Equal(t, []string{"w", "b", "g"}, normal.(*Tree).Keys())

	g, ok := normal.(*Tree).Table("g")
	require.True(t, ok)
	assert.Equal(t, []string{"@name", "e", "a"}, g.Keys())

	v, _ := config.Path("log.json")
	assert.Equal(t, true, v)
	v, _ = config.Path("log.count")
	assert.Equal(t, int64(3), v)
}

func TestYAMLLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/list.yaml", "- a\n- b\n")
	memfs.AddFile("/broken.yaml", "keys:\n  normal: [\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/list.yaml").Load()
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "mapping")

	_, err = NewYAMLLoaderWithFS(memfs, "/broken.yaml").Load()
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "/broken.yaml", perr.Path)
}

func TestYAMLLoader_Empty(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/empty.yaml", "")

	config, err := NewYAMLLoaderWithFS(memfs, "/empty.yaml").Load()
	require.NoError(t, err)
	assert.Equal(t, 0, config.Len())
}

func TestJSONLoader_PreservesOrder(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/keys.json", `{
  "keys": {
    "insert": {"C-x": "completion", "C-s": "commit_undo_checkpoint", "A-d": "delete_word_forward"}
  },
  "log": {"level": "warn", "json": false, "ratio": 0.5}
}`)

	config, err := NewJSONLoaderWithFS(memfs, "/keys.json").Load()
	require.NoError(t, err)

	insert, ok := config.Path("keys.insert")
	require.True(t, ok)
	assert.Equal(t, []string{"C-x", "C-s", "A-d"}, insert.(*Tree).Keys())

	v, _ := config.Path("log.json")
	assert.Equal(t, false, v)
	v, _ = config.Path("log.ratio")
	assert.Equal(t, 0.5, v)
}

func TestJSONLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.json", `{"keys": `)
	memfs.AddFile("/array.json", `[1, 2]`)

	for _, path := range []string{"/bad.json", "/array.json"} {
		_, err := NewJSONLoaderWithFS(memfs, path).Load()
		var perr *ParseError
		require.ErrorAs(t, err, &perr, path)
		assert.Equal(t, path, perr.Path)
	}
}

func TestLoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
"@include" = ["base.yaml"]

[log]
level = "debug"

[keys.normal]
w = "save"
`)
	memfs.AddFile("/base.yaml", `
log:
  level: warn
  file: /tmp/keytrie.log
keys:
  normal:
    b: move_prev_word_start
`)

	config, err := LoadWithIncludes(memfs, "/config.toml", 5)
	require.NoError(t, err)

	_, ok := config.Get("@include")
	assert.False(t, ok, "@include should be removed")

	v, _ := config.Path("log.level")
	assert.Equal(t, "debug", v, "main file overrides include")
	v, _ = config.Path("log.file")
	assert.Equal(t, "/tmp/keytrie.log", v)

	normal, _ := config.Path("keys.normal")
	assert.Equal(t, []string{"b", "w"}, normal.(*Tree).Keys())
}

func TestLoadWithIncludes_DepthExceeded(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = ["b.toml"]`)
	memfs.AddFile("/b.toml", `"@include" = ["c.toml"]`)
	memfs.AddFile("/c.toml", `"@include" = ["d.toml"]`)
	memfs.AddFile("/d.toml", `value = 1`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 2)
	assert.ErrorIs(t, err, ErrIncludeDepthExceeded)

	config, err := LoadWithIncludes(memfs, "/a.toml", 5)
	require.NoError(t, err)
	v, _ := config.Get("value")
	assert.Equal(t, int64(1), v)
}

func TestLoadWithIncludes_InvalidDirective(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/a.toml", `"@include" = 3`)

	_, err := LoadWithIncludes(memfs, "/a.toml", 5)
	assert.ErrorIs(t, err, ErrInvalidInclude)
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("KEYTRIE_LOG_LEVEL", "debug")
	t.Setenv("KEYTRIE_DEFAULT_MODE", "insert")
	t.Setenv("KEYTRIE_EDITOR_THING", "x")
	t.Setenv("KEYTRIE_KEYS_NORMAL", "ignored")
	t.Setenv("KEYTRIE_CONFIG", "/elsewhere/config.toml")

	config, err := NewEnvLoader(EnvPrefix).Load()
	require.NoError(t, err)

	v, _ := config.Path("log.level")
	assert.Equal(t, "debug", v)
	v, _ = config.Path("editor.default_mode")
	assert.Equal(t, "insert", v)
	v, _ = config.Path("editor.thing")
	assert.Equal(t, "x", v)
	_, ok := config.Get("keys")
	assert.False(t, ok)
	_, ok = config.Get("config")
	assert.False(t, ok)
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader(EnvPrefix)

	tests := []struct {
		env  string
		want string
	}{
		{"KEYTRIE_EDITOR_DEFAULT_MODE", "editor.default_mode"},
		{"KEYTRIE_LOG_FILE", "log.file"},
		{"KEYTRIE_SIMPLE", "simple"},
		{"KEYTRIE_", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.envToPath(tt.env), tt.env)
	}
}
