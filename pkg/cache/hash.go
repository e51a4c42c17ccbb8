package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the canonical JSON encoding of v. Used to derive the
// content hash of a manifest snapshot: two loads of an unchanged
// workspace produce the same hash.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
