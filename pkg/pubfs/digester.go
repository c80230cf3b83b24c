package pubfs

import "io"

// Digester computes hex-encoded content digests for a named algorithm.
type Digester interface {
	// Digest consumes r and returns the lowercase hex digest.
	Digest(r io.Reader, algorithm string) (string, error)

	// DigestBytes is the in-memory equivalent of Digest.
	DigestBytes(content []byte, algorithm string) (string, error)
}
