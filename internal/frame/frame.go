// Package frame decodes IMU notification payloads into samples.
//
// Three wire formats exist in the field. 24 byte payloads are always six floats.
// 12 byte payloads are ambiguous, configured Format picks the interpretation:
// six scaled int16 or one float triplet of a split pair.
package frame

import (
	"fmt"
	"math"
	"strings"

	"github.com/juju/errors"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/internal/types"
)

type Format uint8

const (
	FormatInvalid Format = iota
	F32x6
	I16x6
	F32x3Pair
)

var formatNames = map[Format]string{
	F32x6:     "f32x6",
	I16x6:     "i16x6",
	F32x3Pair: "f32x3pair",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "invalid"
}

func ParseFormat(s string) (Format, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == norm {
			return f, nil
		}
	}
	return FormatInvalid, errors.NotValidf("frame format=%q (expected f32x6|i16x6|f32x3pair)", s)
}

const DefaultAccelThreshold = 5.0

type UnrecognizedFormatError struct {
	Len     int
	Preview string // hex of first PreviewMax bytes
}

func (self *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized frame len=%d data=%s", self.Len, self.Preview)
}

func (self *UnrecognizedFormatError) Kind() types.ErrorKind { return types.ErrorUnrecognizedFormat }

func IsUnrecognized(err error) bool {
	_, ok := errors.Cause(err).(*UnrecognizedFormatError)
	return ok
}

func unrecognized(b []byte) error {
	return &UnrecognizedFormatError{Len: len(b), Preview: helpers.HexPreview(b, PreviewMax)}
}

type Options struct {
	// Triplet with every |component| below threshold is accel, otherwise gyro.
	AccelThreshold float32
}

// Decoder is not safe for concurrent use; F32x3Pair keeps pending halves between calls.
type Decoder struct {
	format    Format
	threshold float32

	pendingAccel *types.Vec3
	pendingGyro  *types.Vec3
}

func NewDecoder(format Format, opt Options) *Decoder {
	if _, ok := formatNames[format]; !ok {
		panic(fmt.Sprintf("code error frame.NewDecoder format=%d", format))
	}
	if opt.AccelThreshold <= 0 {
		opt.AccelThreshold = DefaultAccelThreshold
	}
	return &Decoder{format: format, threshold: opt.AccelThreshold}
}

func (self *Decoder) Format() Format { return self.format }

// Reset drops pending split-pair halves, call on reconnect.
func (self *Decoder) Reset() {
	self.pendingAccel = nil
	self.pendingGyro = nil
}

// Decode returns ok=false with nil error when a split pair is still incomplete.
// Unknown payload shape returns *UnrecognizedFormatError, never panics.
func (self *Decoder) Decode(b []byte, ts float64) (types.Sample, bool, error) {
	s := types.Sample{Timestamp: ts}
	switch {
	case len(b) == SizeF32x6:
		s.Accel, s.Gyro = DecodeF32x6(b)
		return s, true, nil

	case len(b) == SizeI16x6 && self.format == I16x6:
		s.Accel, s.Gyro = DecodeI16x6(b)
		return s, true, nil

	case len(b) == SizeTriple && self.format == F32x3Pair:
		v := DecodeTriple(b)
		if self.isAccel(v) {
			self.pendingAccel = &v
		} else {
			self.pendingGyro = &v
		}
		if self.pendingAccel == nil || self.pendingGyro == nil {
			return s, false, nil
		}
		s.Accel, s.Gyro = *self.pendingAccel, *self.pendingGyro
		self.Reset()
		return s, true, nil
	}
	return s, false, unrecognized(b)
}

func (self *Decoder) isAccel(v types.Vec3) bool {
	t := float64(self.threshold)
	return math.Abs(float64(v.X)) < t && math.Abs(float64(v.Y)) < t && math.Abs(float64(v.Z)) < t
}
