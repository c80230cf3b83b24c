package fstree

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/pubfs/internal/async"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// Directory is a directory path. The zero value names the filesystem root
// sentinel and is rarely useful; construct values with NewDirectory.
type Directory struct {
	dirPath string
}

// Contents is one non-recursive listing of a Directory.
type Contents struct {
	Dirs  []Directory
	Files []File
}

// NewDirectory joins parts (strings, Directories or Files) into a Directory.
func NewDirectory(parts ...any) Directory {
	return Directory{dirPath: joinParts(parts)}
}

// Path returns the normalized path as given, without trailing separators.
func (d Directory) Path() string { return d.dirPath }

func (d Directory) String() string { return d.dirPath }

// DirName returns the last path segment, or the separator for the root.
func (d Directory) DirName() string {
	if d.dirPath == "" {
		return string(filepath.Separator)
	}
	return filepath.Base(d.dirPath)
}

// AbsPath returns the path resolved against the working directory.
func (d Directory) AbsPath() string {
	return absPath(d.dirPath)
}

// Equals reports whether both values resolve to the same absolute path.
func (d Directory) Equals(other Directory) bool {
	return d.AbsPath() == other.AbsPath()
}

// Parent returns the containing directory.
func (d Directory) Parent() Directory {
	return Directory{dirPath: trimTrailingSeparators(filepath.Dir(d.dirPath))}
}

// Dir returns a descendant directory.
func (d Directory) Dir(parts ...any) Directory {
	return NewDirectory(append([]any{d}, parts...)...)
}

// File returns a file inside d.
func (d Directory) File(parts ...any) File {
	return NewFile(append([]any{d}, parts...)...)
}

// RelativeTo returns d's path relative to base.
func (d Directory) RelativeTo(base Directory) (string, error) {
	return filepath.Rel(base.AbsPath(), d.AbsPath())
}

// Exists returns d's FileInfo if it exists and is a directory, nil otherwise.
// Stat failures of any kind mean "not present"; only ctx errors are returned.
func (d Directory) Exists(ctx context.Context) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	info, err := os.Stat(d.AbsPath())
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	return info, nil
}

// ExistsSync is like Exists but returns stat errors other than not-exist.
func (d Directory) ExistsSync() (fs.FileInfo, error) {
	info, err := os.Stat(d.AbsPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}
	return info, nil
}

// IsEmpty reports whether d has no entries. d must exist.
func (d Directory) IsEmpty(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return d.IsEmptySync()
}

// IsEmptySync is the blocking form of IsEmpty.
func (d Directory) IsEmptySync() (bool, error) {
	f, err := os.Open(d.AbsPath())
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// EnsureExists creates d and any missing ancestors, parents first, like
// mkdir -p. Already-existing prefixes are skipped. Directories created before
// a failure are left in place; calling again resumes.
func (d Directory) EnsureExists(ctx context.Context) error {
	steps := make([]async.Step[string], 0)
	for _, prefix := range prefixes(d.AbsPath()) {
		prefix := prefix
		steps = append(steps, func(ctx context.Context, _ string) (string, error) {
			return prefix, mkdirIfMissing(prefix)
		})
	}
	if _, err := async.Sequence(ctx, steps, ""); err != nil {
		return err
	}
	return d.checkIsDir()
}

// EnsureExistsSync is the blocking form of EnsureExists.
func (d Directory) EnsureExistsSync() error {
	for _, prefix := range prefixes(d.AbsPath()) {
		if err := mkdirIfMissing(prefix); err != nil {
			return err
		}
	}
	return d.checkIsDir()
}

func mkdirIfMissing(p string) error {
	err := os.Mkdir(p, pubfs.DirPerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
}

// checkIsDir catches the case where the final prefix already existed as a file.
func (d Directory) checkIsDir() error {
	info, err := os.Stat(d.AbsPath())
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", pubfs.ErrNotADirectory, d.dirPath)
	}
	return nil
}

// Contents lists d once, classifying each entry as a file or directory. The
// entries carry absolute paths in name order. Entry stats run concurrently.
func (d Directory) Contents(ctx context.Context) (Contents, error) {
	if err := ctx.Err(); err != nil {
		return Contents{}, err
	}
	root := d.AbsPath()
	entries, err := os.ReadDir(root)
	if err != nil {
		return Contents{}, err
	}

	isDir := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			dir, err := classify(root, entry)
			isDir[i] = dir
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Contents{}, err
	}

	return buildContents(root, entries, isDir), nil
}

// ContentsSync is the blocking form of Contents.
func (d Directory) ContentsSync() (Contents, error) {
	root := d.AbsPath()
	entries, err := os.ReadDir(root)
	if err != nil {
		return Contents{}, err
	}

	isDir := make([]bool, len(entries))
	for i, entry := range entries {
		if isDir[i], err = classify(root, entry); err != nil {
			return Contents{}, err
		}
	}
	return buildContents(root, entries, isDir), nil
}

// classify stats entry, following symbolic links. An entry that vanished or
// a dangling link counts as a file.
func classify(root string, entry fs.DirEntry) (bool, error) {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir(), nil
	}
	info, err := os.Stat(filepath.Join(root, entry.Name()))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func buildContents(root string, entries []fs.DirEntry, isDir []bool) Contents {
	var c Contents
	for i, entry := range entries {
		p := filepath.Join(root, entry.Name())
		if isDir[i] {
			c.Dirs = append(c.Dirs, Directory{dirPath: p})
		} else {
			c.Files = append(c.Files, File{filePath: p})
		}
	}
	return c
}

// Files lists the files directly in d, or with recursive set, those files
// followed by each subdirectory's recursive files in listing order.
// Subdirectories are walked concurrently; the result order is unaffected.
func (d Directory) Files(ctx context.Context, recursive bool) ([]File, error) {
	contents, err := d.Contents(ctx)
	if err != nil {
		return nil, err
	}
	if !recursive {
		return contents.Files, nil
	}

	nested := make([][]File, len(contents.Dirs))
	g, gctx := errgroup.WithContext(ctx)
	for i, sub := range contents.Dirs {
		i, sub := i, sub
		g.Go(func() error {
			files, err := sub.Files(gctx, true)
			nested[i] = files
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := contents.Files
	for _, n := range nested {
		files = append(files, n...)
	}
	return files, nil
}

// FilesSync is the blocking form of Files.
func (d Directory) FilesSync(recursive bool) ([]File, error) {
	contents, err := d.ContentsSync()
	if err != nil {
		return nil, err
	}
	if !recursive {
		return contents.Files, nil
	}

	files := contents.Files
	for _, sub := range contents.Dirs {
		nested, err := sub.FilesSync(true)
		if err != nil {
			return nil, err
		}
		files = append(files, nested...)
	}
	return files, nil
}
