// Package manifest records the digest of every file below a directory.
//
// A Manifest is built from an fstree.Directory, saved as JSON next to a
// published tree, and later compared against a fresh build of the same tree
// to find files that were added, removed or changed.
//
// Paths are Unix-style and carry a "./" prefix so manifests built on
// different platforms compare equal.
package manifest
