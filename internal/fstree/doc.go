// Package fstree treats directories and files as values instead of path strings.
//
// Directory and File hold nothing but a normalized path. Every operation reads
// the current filesystem state, so two values naming the same location are
// interchangeable and no handle is kept open between calls.
//
// Each operation comes in two forms:
//
//   - Context-taking methods (Delete, Copy, Prune, ...) fan sibling work out
//     onto goroutines and return once all of it has finished. The first error
//     cancels the remaining siblings.
//   - ...Sync methods do the same work on the calling goroutine, one entry at
//     a time.
//
// Absence is not an error where it is a valid state: Exists returns a nil
// FileInfo, and Delete of a missing path succeeds. Operations that need the
// path to be present (IsEmpty, Contents, Hash) return fs.ErrNotExist.
//
// Nothing here is transactional. A failed recursive Delete, Copy or
// EnsureExists can leave a partially processed tree behind, and rerunning the
// call is the supported recovery.
//
// Symbolic links are followed when listing (a link to a directory is listed as
// a directory), so a cyclic link chain makes the recursive operations recurse
// without bound. Delete is the exception: it unlinks symbolic links, including
// a receiver that is itself a link, instead of descending through them.
package fstree
