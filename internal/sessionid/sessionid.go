// Package sessionid mints sortable identifiers for fight sessions: a UUIDv7
// rendered as 26 characters of Crockford base32, TypeID style.
package sessionid

import (
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lower case.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id.
const Length = 26

// Generate returns a new session id.
func Generate() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// GenerateFrom returns a new session id whose random bits come from r.
func GenerateFrom(r io.Reader) (string, error) {
	u, err := uuid.NewV7FromReader(r)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID as 26 base32 characters. The 128 bits are
// left-padded with two zero bits so the first character is at most '7'.
func Encode(u uuid.UUID) string {
	bit := func(n int) byte {
		if n < 0 {
			return 0
		}
		return (u[n/8] >> (7 - n%8)) & 1
	}

	out := make([]byte, Length)
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v = v<<1 | bit(i*5-2+j)
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Validate checks that id is 26 base32 characters with a leading 0-7.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session id first character must be 0-7, got %c", id[0])
	}
	for i := 0; i < len(id); i++ {
		if !isAlphabet(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func isAlphabet(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
