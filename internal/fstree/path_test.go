package fstree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinParts(t *testing.T) {
	tests := []struct {
		name  string
		parts []any
		want  string
	}{
		{name: "single", parts: []any{"/a/b"}, want: "/a/b"},
		{name: "trailing separators", parts: []any{"/a/b///"}, want: "/a/b"},
		{name: "relative join", parts: []any{"a", "b", "c.txt"}, want: "a/b/c.txt"},
		{name: "absolute restarts", parts: []any{"/a", "/b", "c"}, want: "/b/c"},
		{name: "empty parts skipped", parts: []any{"", "/a", "", "b"}, want: "/a/b"},
		{name: "directory part", parts: []any{NewDirectory("/x/y/"), "z"}, want: "/x/y/z"},
		{name: "file part", parts: []any{NewFile("/x/f.txt")}, want: "/x/f.txt"},
		{name: "root kept", parts: []any{"/"}, want: "/"},
		{name: "dot dot kept", parts: []any{"/a/../b"}, want: "/a/../b"},
		{name: "nothing", parts: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), joinParts(tt.parts))
		})
	}
}

func TestPrefixes(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{path: "/tmp/a/b/c", want: []string{"/tmp", "/tmp/a", "/tmp/a/b", "/tmp/a/b/c"}},
		{path: "/tmp/a/b/c/", want: []string{"/tmp", "/tmp/a", "/tmp/a/b", "/tmp/a/b/c"}},
		{path: "a/b", want: []string{"a", "a/b"}},
		{path: "/", want: nil},
		{path: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, prefixes(tt.path))
		})
	}
}

func TestDirectory_Attributes(t *testing.T) {
	d := NewDirectory("/srv/packages/")
	assert.Equal(t, "/srv/packages", d.Path())
	assert.Equal(t, "packages", d.DirName())
	assert.Equal(t, "/srv", d.Parent().Path())
	assert.Equal(t, "/srv/packages/lib", d.Dir("lib").Path())
	assert.Equal(t, "/srv/packages/lib/index.js", d.File("lib", "index.js").Path())

	assert.Equal(t, "/", NewDirectory("/").DirName())
	assert.Equal(t, string(filepath.Separator), Directory{}.DirName())
}

func TestFile_Attributes(t *testing.T) {
	f := NewFile("/srv/packages/lib/index.test.js")
	assert.Equal(t, "/srv/packages/lib/", f.DirName())
	assert.Equal(t, "index.test.js", f.FileName())
	assert.Equal(t, ".js", f.ExtName())
	assert.Equal(t, "index.test", f.BaseName())
	assert.Equal(t, "/srv/packages/lib", f.Directory().Path())

	noExt := NewFile("/etc/hosts")
	assert.Equal(t, "", noExt.ExtName())
	assert.Equal(t, "hosts", noExt.BaseName())

	atRoot := NewFile("/hosts")
	assert.Equal(t, "/", atRoot.DirName())

	relative := NewFile("package.json")
	assert.Equal(t, "./", relative.DirName())
}

func TestEquals_RelativeAndAbsolute(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	assert.True(t, NewDirectory("pkg").Equals(NewDirectory(filepath.Join(root, "pkg"))))
	assert.True(t, NewDirectory("pkg/").Equals(NewDirectory("./pkg")))
	assert.False(t, NewDirectory("pkg").Equals(NewDirectory("other")))

	assert.True(t, NewFile("pkg", "a.txt").Equals(NewFile(filepath.Join(root, "pkg", "a.txt"))))
	assert.False(t, NewFile("a.txt").Equals(NewFile("b.txt")))
}

func TestRelativeTo(t *testing.T) {
	base := NewDirectory("/srv/packages")

	rel, err := NewDirectory("/srv/packages/lib/util").RelativeTo(base)
	assert.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("lib/util"), rel)

	rel, err = NewFile("/srv/packages/lib/index.js").RelativeTo(base)
	assert.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("lib/index.js"), rel)
}
