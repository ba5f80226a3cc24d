// Package mac parses and normalizes 48-bit Bluetooth device addresses.
// Canonical text form is uppercase colon separated "AA:BB:CC:DD:EE:FF".
package mac

import (
	"encoding/hex"
	"strings"

	"github.com/juju/errors"
)

var ErrInvalidFormat = errors.New("invalid MAC address format")

type Address [6]byte

var Zero Address

// Parse accepts 12 hex digits, optionally separated by colons at every byte boundary.
// Case insensitive. Any other length, whitespace included, is ErrInvalidFormat.
func Parse(raw string) (Address, error) {
	var a Address
	s := raw
	switch len(s) {
	case 12:
	case 17:
		var b strings.Builder
		b.Grow(12)
		for i := 0; i < len(s); i++ {
			if i%3 == 2 {
				if s[i] != ':' {
					return a, errors.Annotatef(ErrInvalidFormat, "input=%q", raw)
				}
				continue
			}
			b.WriteByte(s[i])
		}
		s = b.String()
	default:
		return a, errors.Annotatef(ErrInvalidFormat, "input=%q", raw)
	}
	if _, err := hex.Decode(a[:], []byte(s)); err != nil {
		return Address{}, errors.Annotatef(ErrInvalidFormat, "input=%q", raw)
	}
	return a, nil
}

func MustParse(raw string) Address {
	a, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Normalize returns canonical text form of raw address.
func Normalize(raw string) (string, error) {
	a, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return a.String(), nil
}

func IsInvalidFormat(err error) bool { return errors.Cause(err) == ErrInvalidFormat }

func Equal(a, b Address) bool { return a == b }

func (self Address) IsZero() bool { return self == Zero }

func (self Address) String() string {
	const digits = "0123456789ABCDEF"
	buf := make([]byte, 0, 17)
	for i, b := range self {
		if i > 0 {
			buf = append(buf, ':')
		}
		buf = append(buf, digits[b>>4], digits[b&0xf])
	}
	return string(buf)
}

func (self Address) MarshalText() ([]byte, error) { return []byte(self.String()), nil }

func (self *Address) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*self = Zero
		return nil
	}
	a, err := Parse(string(b))
	if err != nil {
		return err
	}
	*self = a
	return nil
}
