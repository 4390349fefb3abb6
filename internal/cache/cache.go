package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// ResultKey derives the cache key for a classified document. The key
// covers the document bytes and the strategy key, so editing the file
// or changing the dispatch both invalidate the entry.
func ResultKey(path, strategyKey string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	h := sha256.New()
	h.Write(data)
	h.Write([]byte("|" + strategyKey))
	return "catalystscan:v1:" + hex.EncodeToString(h.Sum(nil)), nil
}
