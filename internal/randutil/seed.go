package randutil

import (
	"strconv"
	"strings"
)

// SeedFromString hashes text into a seed with a multiply-and-add rolling hash
// that wraps at 32 bits on every platform.
func SeedFromString(s string) int32 {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return h
}

// ParseSeed accepts either a decimal integer or arbitrary text. Integers
// outside the 32-bit range are wrapped; text is hashed with SeedFromString.
func ParseSeed(s string) int32 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int32(uint32(n))
	}
	return SeedFromString(s)
}
