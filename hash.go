package domloc

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text. Hashed keys keep
// cache key size independent of the source string length.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey builds the resolution cache key for a text hash and target
// locale. Scoping by locale lets one cache back several engines.
func CacheKey(hash, locale string) string {
	return hash + ":" + locale
}
