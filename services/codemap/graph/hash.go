package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ComputeFileHash returns content's SHA-256 digest rendered as
// "sha256:" followed by the first 16 lowercase hex characters (8 bytes
// of digest). The truncation is a frozen format choice; collision risk
// is accepted.
func ComputeFileHash(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])[:16]
}

// nowISO8601 returns the current UTC time formatted as ISO-8601 with
// millisecond precision and a "Z" suffix, e.g. "2026-01-01T00:00:00.000Z".
func nowISO8601() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}
