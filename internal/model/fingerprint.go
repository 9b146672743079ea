package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint returns a blake2b-256 digest (hex) of the floor plan content.
// Two plans with the same floors, POIs and walls in the same order share a
// fingerprint. Plans with NaN or infinite numbers have none.
func (m *MapData) Fingerprint() (string, error) {
	// Struct fields marshal in declaration order, so the encoding is stable.
	raw, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("fingerprinting map data: %w", err)
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
