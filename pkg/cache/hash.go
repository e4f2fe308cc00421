package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// CanonicalKey generates the cache key for the canonical form of a
// graph, from the serialized graph payload. The full hash is kept to
// rule out collisions between distinct payloads.
func CanonicalKey(payload []byte) string {
	return "canonical:" + Hash(payload)
}
