// Package checksum provides content digests by algorithm name.
//
// Supported algorithms:
//
//   - md5 (default), sha1, sha256, sha512 from the standard library
//   - blake2b-256, blake2b-512 from golang.org/x/crypto
//   - xxhash64 from github.com/cespare/xxhash/v2
//
// Names are case-insensitive. Additional algorithms can be added with Register.
//
// # Example Usage
//
//	calculator := checksum.New()
//	digest, err := calculator.Digest(file, "sha256")
//
// # Thread Safety
//
// Calculator and the package registry are safe for concurrent use.
package checksum
