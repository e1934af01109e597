package search

import (
	"encoding/base64"
	"fmt"

	"lukechampine.com/frand"
)

// RNG is the random source used by the stochastic parts of a search.
// *frand.RNG satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}

// NewRNG returns a deterministic random source for the given seed.
func NewRNG(seed [32]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

// RandomSeed returns a fresh seed from system entropy.
func RandomSeed() [32]byte {
	return frand.Entropy256()
}

// ParseSeed decodes a base64 (URL-safe or standard, unpadded) 32-byte seed.
func ParseSeed(s string) ([32]byte, error) {
	var seed [32]byte
	decoded, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		decoded, err = base64.RawStdEncoding.DecodeString(s)
		if err != nil {
			return seed, fmt.Errorf("failed to decode seed: %w", err)
		}
	}
	if len(decoded) != 32 {
		return seed, fmt.Errorf("invalid seed length: got %d bytes, expected 32", len(decoded))
	}
	copy(seed[:], decoded)
	return seed, nil
}

// FormatSeed is the inverse of ParseSeed.
func FormatSeed(seed [32]byte) string {
	return base64.RawURLEncoding.EncodeToString(seed[:])
}
