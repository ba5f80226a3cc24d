package frame

import (
	"encoding/binary"
	"math"

	"github.com/temoto/imulink/internal/types"
)

// Wire layouts, all little-endian:
// f32x6     ax:4 ay:4 az:4 gx:4 gy:4 gz:4 (float32)
// i16x6     ax:2 ay:2 az:2 gx:2 gy:2 gz:2 (int16, accel*1000, gyro*100)
// f32x3pair x:4 y:4 z:4 (float32), accel or gyro triplet per notification
const (
	SizeF32x6  = 24
	SizeI16x6  = 12
	SizeTriple = 12

	ScaleAccel = 1000
	ScaleGyro  = 100

	PreviewMax = 32
)

func f32(b []byte) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b)) }
func i16(b []byte) int16   { return int16(binary.LittleEndian.Uint16(b)) }

func putF32(b []byte, v float32) { binary.LittleEndian.PutUint32(b, math.Float32bits(v)) }
func putI16(b []byte, v int16)   { binary.LittleEndian.PutUint16(b, uint16(v)) }

// DecodeF32x6 expects exactly SizeF32x6 bytes. No range validation.
func DecodeF32x6(b []byte) (accel, gyro types.Vec3) {
	_ = b[SizeF32x6-1]
	accel = types.Vec3{X: f32(b[0:]), Y: f32(b[4:]), Z: f32(b[8:])}
	gyro = types.Vec3{X: f32(b[12:]), Y: f32(b[16:]), Z: f32(b[20:])}
	return
}

// DecodeI16x6 expects exactly SizeI16x6 bytes.
func DecodeI16x6(b []byte) (accel, gyro types.Vec3) {
	_ = b[SizeI16x6-1]
	accel = types.Vec3{
		X: float32(i16(b[0:])) / ScaleAccel,
		Y: float32(i16(b[2:])) / ScaleAccel,
		Z: float32(i16(b[4:])) / ScaleAccel,
	}
	gyro = types.Vec3{
		X: float32(i16(b[6:])) / ScaleGyro,
		Y: float32(i16(b[8:])) / ScaleGyro,
		Z: float32(i16(b[10:])) / ScaleGyro,
	}
	return
}

func DecodeTriple(b []byte) types.Vec3 {
	_ = b[SizeTriple-1]
	return types.Vec3{X: f32(b[0:]), Y: f32(b[4:]), Z: f32(b[8:])}
}

func EncodeF32x6(accel, gyro types.Vec3) []byte {
	b := make([]byte, SizeF32x6)
	for i, v := range [6]float32{accel.X, accel.Y, accel.Z, gyro.X, gyro.Y, gyro.Z} {
		putF32(b[i*4:], v)
	}
	return b
}

// EncodeI16x6 mirrors device firmware: round and clamp to int16.
func EncodeI16x6(accel, gyro types.Vec3) []byte {
	b := make([]byte, SizeI16x6)
	vs := [6]float32{
		accel.X * ScaleAccel, accel.Y * ScaleAccel, accel.Z * ScaleAccel,
		gyro.X * ScaleGyro, gyro.Y * ScaleGyro, gyro.Z * ScaleGyro,
	}
	for i, v := range vs {
		putI16(b[i*2:], clampI16(v))
	}
	return b
}

func EncodeTriple(v types.Vec3) []byte {
	b := make([]byte, SizeTriple)
	putF32(b[0:], v.X)
	putF32(b[4:], v.Y)
	putF32(b[8:], v.Z)
	return b
}

func clampI16(v float32) int16 {
	r := math.Round(float64(v))
	if r > math.MaxInt16 {
		return math.MaxInt16
	}
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return int16(r)
}
