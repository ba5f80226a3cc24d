package helpers

import (
	"encoding/hex"
	"strings"
)

func MustHex(s string) []byte {
	b, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseHex accepts "0a1b", "0A 1B", "0a:1b".
func ParseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ':', '\t', '-':
			return -1
		}
		return r
	}, s)
	return hex.DecodeString(s)
}

// HexPreview is lowercase hex of at most max first bytes of b.
func HexPreview(b []byte, max int) string {
	if len(b) > max {
		b = b[:max]
	}
	return hex.EncodeToString(b)
}
