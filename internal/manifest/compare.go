package manifest

import (
	"errors"
	"fmt"
)

// ErrMismatch is returned by Changes.Err when a tree no longer matches its manifest.
var ErrMismatch = errors.New("tree does not match manifest")

// Changes lists the paths that differ between two manifests.
type Changes struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether the manifests matched.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

// Err returns nil for no changes, or an error wrapping ErrMismatch with counts.
func (c Changes) Err() error {
	if c.Empty() {
		return nil
	}
	return fmt.Errorf("%w: %d added, %d removed, %d changed",
		ErrMismatch, len(c.Added), len(c.Removed), len(c.Changed))
}

// Compare reports how got differs from want. Entries are matched by path and
// compared by digest only, so touched but unchanged files are not reported.
// Both manifests must use the same algorithm.
func Compare(want, got Manifest) (Changes, error) {
	if want.Algorithm != got.Algorithm {
		return Changes{}, fmt.Errorf("cannot compare %s manifest with %s manifest", want.Algorithm, got.Algorithm)
	}

	digests := make(map[string]string, len(want.Entries))
	for _, e := range want.Entries {
		digests[e.Path] = e.Digest
	}

	var c Changes
	for _, e := range got.Entries {
		digest, ok := digests[e.Path]
		switch {
		case !ok:
			c.Added = append(c.Added, e.Path)
		case digest != e.Digest:
			c.Changed = append(c.Changed, e.Path)
		}
		delete(digests, e.Path)
	}
	for _, e := range want.Entries {
		if _, ok := digests[e.Path]; ok {
			c.Removed = append(c.Removed, e.Path)
		}
	}
	return c, nil
}
