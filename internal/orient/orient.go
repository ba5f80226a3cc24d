// Package orient estimates roll and pitch from IMU samples with a
// complementary filter: integrated gyro for short term, accelerometer
// gravity vector for long term.
package orient

import (
	"math"
	"sync"

	"github.com/temoto/imulink/internal/types"
)

const (
	DefaultAlpha = 0.98
	// gap after which integration restarts from accelerometer
	DefaultMaxStep = 1.0 // seconds
)

type Angles struct {
	Roll      float64 `json:"roll"`  // degrees, around X
	Pitch     float64 `json:"pitch"` // degrees, around Y
	Timestamp float64 `json:"t"`
}

type Estimator struct {
	mu      sync.Mutex
	alpha   float64
	maxStep float64
	cur     Angles
	valid   bool
}

// New alpha outside (0,1) means DefaultAlpha.
func New(alpha float64) *Estimator {
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}
	return &Estimator{alpha: alpha, maxStep: DefaultMaxStep}
}

// AccelAngles is roll and pitch of gravity vector alone.
func AccelAngles(a types.Vec3) (roll, pitch float64) {
	x, y, z := float64(a.X), float64(a.Y), float64(a.Z)
	roll = math.Atan2(y, z) * 180 / math.Pi
	pitch = math.Atan2(-x, math.Sqrt(y*y+z*z)) * 180 / math.Pi
	return
}

// Update skips samples without usable gravity vector or time.
// Non-finite gyro restarts integration from accelerometer.
func (self *Estimator) Update(s types.Sample) Angles {
	self.mu.Lock()
	defer self.mu.Unlock()
	roll, pitch := AccelAngles(s.Accel)
	if !finite(roll, pitch, s.Timestamp) {
		return self.cur
	}
	seed := Angles{Roll: roll, Pitch: pitch, Timestamp: s.Timestamp}
	dt := s.Timestamp - self.cur.Timestamp
	if !self.valid || dt <= 0 || dt > self.maxStep {
		self.cur, self.valid = seed, true
		return self.cur
	}
	g := self.alpha
	next := Angles{
		Roll:      g*(self.cur.Roll+float64(s.Gyro.X)*dt) + (1-g)*roll,
		Pitch:     g*(self.cur.Pitch+float64(s.Gyro.Y)*dt) + (1-g)*pitch,
		Timestamp: s.Timestamp,
	}
	if !finite(next.Roll, next.Pitch) {
		next = seed
	}
	self.cur = next
	return self.cur
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Current returns last estimate, ok=false before first sample.
func (self *Estimator) Current() (Angles, bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.cur, self.valid
}

func (self *Estimator) Reset() {
	self.mu.Lock()
	self.cur, self.valid = Angles{}, false
	self.mu.Unlock()
}
