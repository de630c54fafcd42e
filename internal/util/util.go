// Package util provides content hashing helpers.
package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func ContentHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func ContentHashString(content string) string {
	return ContentHash([]byte(content))
}

// ShortHash is the first 16 hex characters of the content hash, used for ETags.
func ShortHash(content []byte) string {
	return ContentHash(content)[:16]
}
