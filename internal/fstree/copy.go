package fstree

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/otiai10/copy"

	"github.com/vvka-141/pubfs/internal/retry"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// OverwriteError reports a copy that would replace different content.
type OverwriteError struct {
	Source      string
	Destination string
}

func (e *OverwriteError) Error() string {
	return fmt.Sprintf("copying %s to %s would overwrite a file with different content", e.Source, e.Destination)
}

func (e *OverwriteError) Unwrap() error { return pubfs.ErrWouldOverwrite }

// Target is a copy or move destination: a File, or a Directory that receives
// the file under its own name (or the name given with WithFileName).
type Target interface {
	resolve(src File, name string) File
}

func (f File) resolve(File, string) File { return f }

func (d Directory) resolve(src File, name string) File {
	if name == "" {
		name = src.FileName()
	}
	return d.File(name)
}

type copyConfig struct {
	overwrite bool
	fileName  string
	algorithm string
	executor  *retry.Executor
}

// CopyOption configures File and Directory copies and moves.
type CopyOption func(*copyConfig)

// WithOverwrite allows replacing a destination whose content differs.
func WithOverwrite(overwrite bool) CopyOption {
	return func(c *copyConfig) { c.overwrite = overwrite }
}

// WithFileName names the destination when the target is a Directory.
func WithFileName(name string) CopyOption {
	return func(c *copyConfig) { c.fileName = name }
}

// WithHashAlgorithm selects the digest used to detect identical content.
func WithHashAlgorithm(algorithm string) CopyOption {
	return func(c *copyConfig) { c.algorithm = algorithm }
}

// WithRetry sets the policy for retrying the byte copy on transient errors.
func WithRetry(executor *retry.Executor) CopyOption {
	return func(c *copyConfig) { c.executor = executor }
}

func newCopyConfig(opts []CopyOption) copyConfig {
	c := copyConfig{algorithm: pubfs.DefaultHashAlgorithm}
	for _, opt := range opts {
		opt(&c)
	}
	if c.executor == nil {
		c.executor = retry.NewExecutor(
			retry.NewFilesystemErrorClassifier(),
			retry.NewExponentialBackoff(pubfs.DefaultCopyAttempts),
		)
	}
	return c
}

// Copy copies f to dest and returns the destination file.
//
// If the destination already has the same digest nothing is written, so its
// timestamps stay untouched. If it has different content the copy fails with
// an *OverwriteError unless WithOverwrite(true) is given. Otherwise the parent
// directory is created and the bytes are written, with the source's
// timestamps, to a staging file that is then renamed into place. The byte
// copy is retried on transient errors.
func (f File) Copy(ctx context.Context, dest Target, opts ...CopyOption) (File, error) {
	cfg := newCopyConfig(opts)
	target := dest.resolve(f, cfg.fileName)

	proceed, err := checkDestination(f, target, cfg, func(file File) (string, error) {
		return file.Hash(ctx, cfg.algorithm)
	})
	if err != nil || !proceed {
		return target, err
	}

	if err := target.Directory().EnsureExists(ctx); err != nil {
		return File{}, err
	}
	if err := cfg.executor.Execute(ctx, func(ctx context.Context) error {
		return copyContent(ctx, f, target)
	}); err != nil {
		return File{}, err
	}
	return target, nil
}

// CopySync is the blocking form of Copy.
func (f File) CopySync(dest Target, opts ...CopyOption) (File, error) {
	cfg := newCopyConfig(opts)
	target := dest.resolve(f, cfg.fileName)

	proceed, err := checkDestination(f, target, cfg, func(file File) (string, error) {
		return file.HashSync(cfg.algorithm)
	})
	if err != nil || !proceed {
		return target, err
	}

	if err := target.Directory().EnsureExistsSync(); err != nil {
		return File{}, err
	}
	if err := cfg.executor.Execute(context.Background(), func(ctx context.Context) error {
		return copyContent(ctx, f, target)
	}); err != nil {
		return File{}, err
	}
	return target, nil
}

// checkDestination compares digests and reports whether bytes must be copied.
func checkDestination(src, dst File, cfg copyConfig, hash func(File) (string, error)) (bool, error) {
	srcHash, err := hash(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s: %w", pubfs.ErrSourceNotFound, src.filePath, err)
		}
		return false, err
	}

	dstHash, err := hash(dst)
	if err != nil {
		// Missing or unreadable destination: treat as nothing there yet.
		dstHash = ""
	}

	if dstHash != "" && dstHash == srcHash {
		return false, nil
	}
	if dstHash != "" && !cfg.overwrite {
		return false, &OverwriteError{Source: src.filePath, Destination: dst.filePath}
	}
	return true, nil
}

// copyContent copies src's bytes and timestamps to a staging file beside dst
// and renames it over dst, so dst is never observed half-written.
func copyContent(ctx context.Context, src, dst File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	staging := dst.Directory().File("." + dst.FileName() + "." + uuid.NewString() + ".tmp").AbsPath()
	if err := copy.Copy(src.AbsPath(), staging, copy.Options{PreserveTimes: true, Sync: true}); err != nil {
		os.Remove(staging)
		return err
	}
	if err := os.Rename(staging, dst.AbsPath()); err != nil {
		os.Remove(staging)
		return err
	}
	return nil
}

// Move copies f to dest and then deletes f. When the destination does not
// exist yet a rename is tried first. If the final delete fails, both files
// remain.
func (f File) Move(ctx context.Context, dest Target, opts ...CopyOption) (File, error) {
	cfg := newCopyConfig(opts)
	target := dest.resolve(f, cfg.fileName)

	if err := target.Directory().EnsureExists(ctx); err != nil {
		return File{}, err
	}
	if f.tryRename(target) {
		return target, nil
	}

	result, err := f.Copy(ctx, target, opts...)
	if err != nil {
		return File{}, err
	}
	if f.Equals(result) {
		return result, nil
	}
	return result, f.Delete(ctx)
}

// MoveSync is the blocking form of Move.
func (f File) MoveSync(dest Target, opts ...CopyOption) (File, error) {
	cfg := newCopyConfig(opts)
	target := dest.resolve(f, cfg.fileName)

	if err := target.Directory().EnsureExistsSync(); err != nil {
		return File{}, err
	}
	if f.tryRename(target) {
		return target, nil
	}

	result, err := f.CopySync(target, opts...)
	if err != nil {
		return File{}, err
	}
	if f.Equals(result) {
		return result, nil
	}
	return result, f.DeleteSync()
}

func (f File) tryRename(target File) bool {
	if _, err := os.Lstat(target.AbsPath()); !errors.Is(err, fs.ErrNotExist) {
		return false
	}
	if _, err := os.Stat(f.AbsPath()); err != nil {
		return false
	}
	return os.Rename(f.AbsPath(), target.AbsPath()) == nil
}
