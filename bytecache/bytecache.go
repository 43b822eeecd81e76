// Package bytecache defines the raw-bytes store used by source.Cached to
// avoid re-reading hot files. Implementations MUST be byte-for-byte
// transparent: Get must return exactly the same []byte previously passed to
// Set for a key - no prepended metadata, no re-encoding, no mutation.
//
// Eviction is the provider's business; a miss only costs one extra file read.
package bytecache

// Provider is a minimal local byte store.
// Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true) on hit and (nil, false) on miss.
	Get(key string) ([]byte, bool)

	// Set stores value. Returns false when the store rejected the write
	// under pressure; callers treat that as a cache miss next time.
	Set(key string, value []byte) bool

	// Del removes a key (best-effort).
	Del(key string)

	// Close releases resources.
	Close() error
}
