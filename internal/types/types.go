// Package types holds data shared between imulink packages.
package types

import (
	"fmt"

	"github.com/temoto/imulink/internal/mac"
)

type Vec3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Sample is one decoded IMU reading.
// Timestamp is seconds since pipeline start, monotonic.
// Accel in g or device-native units, Gyro in deg/s.
type Sample struct {
	Timestamp float64 `json:"t"`
	Accel     Vec3    `json:"accel"`
	Gyro      Vec3    `json:"gyro"`
}

func (self Sample) String() string {
	return fmt.Sprintf("t=%.3f a=(%g,%g,%g) g=(%g,%g,%g)",
		self.Timestamp, self.Accel.X, self.Accel.Y, self.Accel.Z, self.Gyro.X, self.Gyro.Y, self.Gyro.Z)
}

// Advertisement is one discovery result, not retained after filter decision.
type Advertisement struct {
	Address mac.Address
	Name    string
	RSSI    int16
	HasRSSI bool
}

func (self Advertisement) String() string {
	if self.HasRSSI {
		return fmt.Sprintf("%s name=%q rssi=%d", self.Address, self.Name, self.RSSI)
	}
	return fmt.Sprintf("%s name=%q", self.Address, self.Name)
}
