package fstree

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Delete removes d and everything below it. A missing directory is not an
// error, and a path that is not a directory is left alone. Children are
// removed concurrently and d itself only after all of them are gone; if any
// child fails, d is left with the remaining entries. Symbolic links,
// including d itself, are unlinked and never descended into.
func (d Directory) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	root := d.AbsPath()
	descend, err := deletePlan(root)
	if err != nil || !descend {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		p := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			sub := Directory{dirPath: p}
			g.Go(func() error { return sub.Delete(gctx) })
		} else {
			file := File{filePath: p}
			g.Go(func() error { return file.Delete(gctx) })
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return removeDir(root)
}

// DeleteSync is the blocking form of Delete.
func (d Directory) DeleteSync() error {
	root := d.AbsPath()
	descend, err := deletePlan(root)
	if err != nil || !descend {
		return err
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		p := filepath.Join(root, entry.Name())
		if entry.IsDir() {
			err = Directory{dirPath: p}.DeleteSync()
		} else {
			err = File{filePath: p}.DeleteSync()
		}
		if err != nil {
			return err
		}
	}

	return removeDir(root)
}

// deletePlan inspects root without following it. It reports true when root is
// a real directory whose entries must be removed. A symlink at root is
// unlinked here. Only a missing root (or one below a regular file) is
// silently accepted.
func deletePlan(root string) (bool, error) {
	info, err := os.Lstat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, err
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return false, removeDir(root)
	}
	return info.IsDir(), nil
}

func removeDir(p string) error {
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Empty leaves d existing and empty, whether or not it existed before.
func (d Directory) Empty(ctx context.Context) error {
	if err := d.Delete(ctx); err != nil {
		return err
	}
	return d.EnsureExists(ctx)
}

// EmptySync is the blocking form of Empty.
func (d Directory) EmptySync() error {
	if err := d.DeleteSync(); err != nil {
		return err
	}
	return d.EnsureExistsSync()
}

// Prune removes every descendant directory that is empty once its own
// descendants have been pruned. d itself is never removed.
func (d Directory) Prune(ctx context.Context) error {
	contents, err := d.Contents(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, sub := range contents.Dirs {
		sub := sub
		g.Go(func() error {
			if err := sub.Prune(gctx); err != nil {
				return err
			}
			empty, err := sub.IsEmpty(gctx)
			if err != nil || !empty {
				return err
			}
			return sub.Delete(gctx)
		})
	}
	return g.Wait()
}

// PruneSync is the blocking form of Prune.
func (d Directory) PruneSync() error {
	contents, err := d.ContentsSync()
	if err != nil {
		return err
	}

	for _, sub := range contents.Dirs {
		if err := sub.PruneSync(); err != nil {
			return err
		}
		empty, err := sub.IsEmptySync()
		if err != nil {
			return err
		}
		if empty {
			if err := sub.DeleteSync(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Copy copies d's tree into dest. With copyRoot set the tree lands in
// dest/<d.DirName()> and that directory is returned (for the filesystem root,
// dest itself); otherwise d's entries
// are copied directly into dest and dest is returned. Files go through
// File.Copy, so identical files are skipped and differing ones need
// WithOverwrite. Entries at one level are copied concurrently.
func (d Directory) Copy(ctx context.Context, dest Directory, copyRoot bool, opts ...CopyOption) (Directory, error) {
	if copyRoot {
		target := d.rootTarget(dest)
		if err := target.EnsureExists(ctx); err != nil {
			return Directory{}, err
		}
		return d.Copy(ctx, target, false, opts...)
	}

	if err := dest.EnsureExists(ctx); err != nil {
		return Directory{}, err
	}
	contents, err := d.Contents(ctx)
	if err != nil {
		return Directory{}, err
	}

	fileOpts := keepOwnNames(opts)
	g, gctx := errgroup.WithContext(ctx)
	for _, file := range contents.Files {
		file := file
		g.Go(func() error {
			_, err := file.Copy(gctx, dest, fileOpts...)
			return err
		})
	}
	for _, sub := range contents.Dirs {
		sub := sub
		g.Go(func() error {
			_, err := sub.Copy(gctx, dest, true, opts...)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Directory{}, err
	}
	return dest, nil
}

// CopySync is the blocking form of Copy.
func (d Directory) CopySync(dest Directory, copyRoot bool, opts ...CopyOption) (Directory, error) {
	if copyRoot {
		target := d.rootTarget(dest)
		if err := target.EnsureExistsSync(); err != nil {
			return Directory{}, err
		}
		return d.CopySync(target, false, opts...)
	}

	if err := dest.EnsureExistsSync(); err != nil {
		return Directory{}, err
	}
	contents, err := d.ContentsSync()
	if err != nil {
		return Directory{}, err
	}

	fileOpts := keepOwnNames(opts)
	for _, file := range contents.Files {
		if _, err := file.CopySync(dest, fileOpts...); err != nil {
			return Directory{}, err
		}
	}
	for _, sub := range contents.Dirs {
		if _, err := sub.CopySync(dest, true, opts...); err != nil {
			return Directory{}, err
		}
	}
	return dest, nil
}

// rootTarget is where copyRoot places d inside dest. The filesystem root has
// no name of its own, so its entries go straight into dest.
func (d Directory) rootTarget(dest Directory) Directory {
	if isRoot(d.AbsPath()) {
		return dest
	}
	return dest.Dir(d.DirName())
}

// keepOwnNames drops any WithFileName so tree copies keep each file's name.
func keepOwnNames(opts []CopyOption) []CopyOption {
	return append(opts[:len(opts):len(opts)], WithFileName(""))
}

// Move relocates d's tree into dest (into dest/<d.DirName()> with moveRoot).
// When the counterpart does not exist yet a rename is tried first; otherwise,
// or if the rename fails, the tree is copied and the source deleted. If that
// final delete fails both copies remain.
func (d Directory) Move(ctx context.Context, dest Directory, moveRoot bool, opts ...CopyOption) (Directory, error) {
	if err := dest.EnsureExists(ctx); err != nil {
		return Directory{}, err
	}
	if moveRoot {
		if target, ok := d.tryRename(dest); ok {
			return target, nil
		}
	}

	result, err := d.Copy(ctx, dest, moveRoot, opts...)
	if err != nil {
		return Directory{}, err
	}
	if err := d.Delete(ctx); err != nil {
		return Directory{}, err
	}
	return result, nil
}

// MoveSync is the blocking form of Move.
func (d Directory) MoveSync(dest Directory, moveRoot bool, opts ...CopyOption) (Directory, error) {
	if err := dest.EnsureExistsSync(); err != nil {
		return Directory{}, err
	}
	if moveRoot {
		if target, ok := d.tryRename(dest); ok {
			return target, nil
		}
	}

	result, err := d.CopySync(dest, moveRoot, opts...)
	if err != nil {
		return Directory{}, err
	}
	if err := d.DeleteSync(); err != nil {
		return Directory{}, err
	}
	return result, nil
}

// tryRename renames d to dest/<d.DirName()> if that path is free. It fails
// across devices, in which case the caller falls back to copying.
func (d Directory) tryRename(dest Directory) (Directory, bool) {
	if isRoot(d.AbsPath()) {
		return Directory{}, false
	}
	target := dest.Dir(d.DirName())
	if _, err := os.Lstat(target.AbsPath()); !errors.Is(err, fs.ErrNotExist) {
		return Directory{}, false
	}
	if err := os.Rename(d.AbsPath(), target.AbsPath()); err != nil {
		return Directory{}, false
	}
	return target, true
}
