package manifest

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/pubfs/internal/checksum"
	"github.com/vvka-141/pubfs/internal/fstree"
	"github.com/vvka-141/pubfs/pkg/pubfs"
)

// Entry describes one file, relative to the manifest root.
type Entry struct {
	Path       string    `json:"path"`
	Directory  string    `json:"directory"`
	Depth      int       `json:"depth"`
	SizeBytes  int64     `json:"size_bytes"`
	Digest     string    `json:"digest"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Manifest is the digest listing of a tree, sorted by path.
type Manifest struct {
	Algorithm string  `json:"algorithm"`
	Entries   []Entry `json:"entries"`
}

// Builder computes manifests. It is safe for concurrent use.
type Builder struct {
	algorithm string
	excludes  []string
}

// NewBuilder returns a Builder hashing with algorithm ("" means md5). Files
// whose base name matches one of the filepath.Match patterns in excludes are
// left out.
func NewBuilder(algorithm string, excludes ...string) (*Builder, error) {
	if algorithm == "" {
		algorithm = pubfs.DefaultHashAlgorithm
	}
	if !checksum.Supported(algorithm) {
		return nil, fmt.Errorf("%w: %q", pubfs.ErrUnsupportedAlgorithm, algorithm)
	}
	for _, pattern := range excludes {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid argument: exclude pattern %q: %w", pattern, err)
		}
	}
	return &Builder{algorithm: algorithm, excludes: excludes}, nil
}

// Algorithm reports the digest the builder uses.
func (b *Builder) Algorithm() string { return b.algorithm }

// Build hashes every file below root. Files are hashed concurrently.
func (b *Builder) Build(ctx context.Context, root fstree.Directory) (Manifest, error) {
	files, err := root.Files(ctx, true)
	if err != nil {
		return Manifest{}, err
	}

	var kept []fstree.File
	for _, f := range files {
		if !b.excluded(f.FileName()) {
			kept = append(kept, f)
		}
	}

	entries := make([]Entry, len(kept))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range kept {
		g.Go(func() error {
			entry, err := b.entry(gctx, root, f)
			if err != nil {
				return fmt.Errorf("failed to process file %s: %w", f, err)
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Manifest{}, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return Manifest{Algorithm: b.algorithm, Entries: entries}, nil
}

func (b *Builder) excluded(name string) bool {
	for _, pattern := range b.excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func (b *Builder) entry(ctx context.Context, root fstree.Directory, f fstree.File) (Entry, error) {
	info, err := f.ExistsSync()
	if err != nil {
		return Entry{}, err
	}
	if info == nil {
		return Entry{}, fmt.Errorf("%w: %s", pubfs.ErrSourceNotFound, f)
	}
	rel, err := f.RelativeTo(root)
	if err != nil {
		return Entry{}, err
	}
	digest, err := f.Hash(ctx, b.algorithm)
	if err != nil {
		return Entry{}, err
	}

	path, dir, depth := normalize(rel)
	return Entry{
		Path:       path,
		Directory:  dir,
		Depth:      depth,
		SizeBytes:  info.Size(),
		Digest:     digest,
		ModifiedAt: info.ModTime().UTC(),
	}, nil
}

// normalize turns a relative OS path into "./a/b.txt", its directory "./a/"
// and its depth below the root.
func normalize(rel string) (string, string, int) {
	path := filepath.ToSlash(rel)
	if !strings.HasPrefix(path, "./") {
		path = "./" + path
	}
	dir := path[:strings.LastIndex(path, "/")+1]
	// "./" = 0, "./a/" = 1, "./a/b/" = 2
	depth := strings.Count(dir, "/") - 1
	return path, dir, depth
}

// Save writes m to f as indented JSON, creating parent directories.
func Save(ctx context.Context, f fstree.File, m Manifest) error {
	return f.WriteJSON(ctx, m)
}

// Load reads a manifest written by Save.
func Load(ctx context.Context, f fstree.File) (Manifest, error) {
	var m Manifest
	if err := f.ReadJSON(ctx, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
