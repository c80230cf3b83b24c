package checksum

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/vvka-141/pubfs/pkg/pubfs"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]func() hash.Hash{
		"md5":    md5.New,
		"sha1":   sha1.New,
		"sha256": sha256.New,
		"sha512": sha512.New,
		"blake2b-256": func() hash.Hash {
			h, _ := blake2b.New256(nil) // only fails for oversized keys
			return h
		},
		"blake2b-512": func() hash.Hash {
			h, _ := blake2b.New512(nil)
			return h
		},
		"xxhash64": func() hash.Hash { return xxhash.New() },
	}
)

// Register makes an algorithm available under name, replacing any existing one.
func Register(name string, factory func() hash.Hash) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Algorithms returns the registered algorithm names, sorted.
func Algorithms() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Supported reports whether algorithm is registered. An empty name means the default.
func Supported(algorithm string) bool {
	_, err := NewHash(algorithm)
	return err == nil
}

// NewHash returns a fresh hash.Hash for algorithm. An empty name selects
// pubfs.DefaultHashAlgorithm.
func NewHash(algorithm string) (hash.Hash, error) {
	if algorithm == "" {
		algorithm = pubfs.DefaultHashAlgorithm
	}
	registryMu.RLock()
	factory, ok := registry[strings.ToLower(algorithm)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", pubfs.ErrUnsupportedAlgorithm, algorithm)
	}
	return factory(), nil
}

// Sum returns the lowercase hex encoding of h's current digest.
func Sum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}

// Calculator implements pubfs.Digester over the package registry.
// Calculator is a zero-size type and is safe for concurrent use.
type Calculator struct{}

// New creates a new calculator.
func New() Calculator {
	return Calculator{}
}

// Digest streams r through algorithm.
func (c Calculator) Digest(r io.Reader, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return Sum(h), nil
}

// DigestBytes hashes content in memory.
func (c Calculator) DigestBytes(content []byte, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}
	h.Write(content)
	return Sum(h), nil
}

var _ pubfs.Digester = Calculator{}
