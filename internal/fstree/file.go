package fstree

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/pubfs/internal/async"
	"github.com/vvka-141/pubfs/internal/checksum"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// File is a file path.
type File struct {
	filePath string
}

// NewFile joins parts (strings, Directories or Files) into a File.
func NewFile(parts ...any) File {
	return File{filePath: joinParts(parts)}
}

// Path returns the normalized path as given.
func (f File) Path() string { return f.filePath }

func (f File) String() string { return f.filePath }

// DirName returns the parent directory path with a trailing separator.
func (f File) DirName() string {
	dir := filepath.Dir(f.filePath)
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// FileName returns the last path segment, extension included.
func (f File) FileName() string { return filepath.Base(f.filePath) }

// ExtName returns the extension including the leading dot, or "".
func (f File) ExtName() string { return filepath.Ext(f.filePath) }

// BaseName returns the file name without its extension.
func (f File) BaseName() string { return strings.TrimSuffix(f.FileName(), f.ExtName()) }

// Directory returns the parent directory.
func (f File) Directory() Directory {
	return Directory{dirPath: trimTrailingSeparators(filepath.Dir(f.filePath))}
}

// AbsPath returns the path resolved against the working directory.
func (f File) AbsPath() string { return absPath(f.filePath) }

// Equals reports whether both values resolve to the same absolute path.
func (f File) Equals(other File) bool { return f.AbsPath() == other.AbsPath() }

// RelativeTo returns f's path relative to base.
func (f File) RelativeTo(base Directory) (string, error) {
	return filepath.Rel(base.AbsPath(), f.AbsPath())
}

// Exists returns f's FileInfo if it exists and is a regular file, nil
// otherwise. Only ctx errors are returned.
func (f File) Exists(ctx context.Context) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(f.AbsPath())
	if err != nil || !info.Mode().IsRegular() {
		return nil, nil
	}
	return info, nil
}

// ExistsSync is like Exists but returns stat errors other than not-exist.
func (f File) ExistsSync() (fs.FileInfo, error) {
	info, err := os.Stat(f.AbsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, nil
	}
	return info, nil
}

// Delete unlinks f. A missing file is not an error, and a directory at the
// path is left alone. A symbolic link is removed, not its target.
func (f File) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.DeleteSync()
}

// DeleteSync is the blocking form of Delete.
func (f File) DeleteSync() error {
	p := f.AbsPath()
	info, err := os.Lstat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Hash streams f through algorithm ("" means md5) and returns the hex digest.
func (f File) Hash(ctx context.Context, algorithm string) (string, error) {
	h, err := checksum.NewHash(algorithm)
	if err != nil {
		return "", err
	}
	r, err := os.Open(f.AbsPath())
	if err != nil {
		return "", err
	}
	defer r.Close()

	if err := async.AwaitStream(ctx, async.NewPump(h, r)); err != nil {
		return "", fmt.Errorf("hash %s: %w", f.filePath, err)
	}
	return checksum.Sum(h), nil
}

// HashSync reads f whole and returns its hex digest.
func (f File) HashSync(algorithm string) (string, error) {
	content, err := os.ReadFile(f.AbsPath())
	if err != nil {
		return "", err
	}
	return checksum.New().DigestBytes(content, algorithm)
}

// Read returns f's content as text.
func (f File) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.ReadSync()
}

// ReadSync is the blocking form of Read.
func (f File) ReadSync() (string, error) {
	content, err := os.ReadFile(f.AbsPath())
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Write replaces f's content with text, creating the parent directory first.
func (f File) Write(ctx context.Context, text string) error {
	if err := f.Directory().EnsureExists(ctx); err != nil {
		return err
	}
	return os.WriteFile(f.AbsPath(), []byte(text), pubfs.FilePerm)
}

// WriteSync is the blocking form of Write.
func (f File) WriteSync(text string) error {
	if err := f.Directory().EnsureExistsSync(); err != nil {
		return err
	}
	return os.WriteFile(f.AbsPath(), []byte(text), pubfs.FilePerm)
}

// ReadJSON decodes f's JSON content into v.
func (f File) ReadJSON(ctx context.Context, v any) error {
	text, err := f.Read(ctx)
	if err != nil {
		return err
	}
	return decodeJSON(f, text, v)
}

// ReadJSONSync is the blocking form of ReadJSON.
func (f File) ReadJSONSync(v any) error {
	text, err := f.ReadSync()
	if err != nil {
		return err
	}
	return decodeJSON(f, text, v)
}

// WriteJSON writes v as indented JSON followed by a newline.
func (f File) WriteJSON(ctx context.Context, v any) error {
	text, err := encodeJSON(v)
	if err != nil {
		return err
	}
	return f.Write(ctx, text)
}

// WriteJSONSync is the blocking form of WriteJSON.
func (f File) WriteJSONSync(v any) error {
	text, err := encodeJSON(v)
	if err != nil {
		return err
	}
	return f.WriteSync(text)
}

// ReadYAML decodes f's YAML content into v.
func (f File) ReadYAML(ctx context.Context, v any) error {
	text, err := f.Read(ctx)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parse %s: %w", f.filePath, err)
	}
	return nil
}

// WriteYAML writes v as YAML.
func (f File) WriteYAML(ctx context.Context, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return f.Write(ctx, string(data))
}

func decodeJSON(f File, text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parse %s: %w", f.filePath, err)
	}
	return nil
}

func encodeJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
