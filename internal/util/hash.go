// Package util holds small helpers shared across the service.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// NewID derives a 16-character identifier from content and a
// timestamp. The same content at the same instant always yields the
// same ID, which makes accidental double-saves idempotent.
func NewID(content string, timestamp time.Time) string {
	hasher := sha256.New()
	hasher.Write([]byte(content))
	hasher.Write([]byte(timestamp.UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
