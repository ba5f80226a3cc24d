package radio

import (
	"math"
	"sync"
	"time"

	"github.com/temoto/imulink/internal/frame"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

// Emulator pretends to be one IMU peripheral streaming synthetic motion.
// Useful for dry runs without hardware.
type Emulator struct {
	Address mac.Address
	Name    string
	Format  frame.Format
	Rate    time.Duration // notification period, firmware default 20ms
	Latency time.Duration // scan, connect delay

	mu        sync.Mutex
	connected bool
	stopCh    chan struct{}
	scanStop  chan struct{}
	onLost    LostFunc
	written   [][]byte
}

var _ Radio = &Emulator{}

func NewEmulator(addr mac.Address, name string, format frame.Format) *Emulator {
	return &Emulator{
		Address: addr,
		Name:    name,
		Format:  format,
		Rate:    20 * time.Millisecond,
		Latency: 100 * time.Millisecond,
	}
}

func (self *Emulator) SetLinkLostHandler(f LostFunc) {
	self.mu.Lock()
	self.onLost = f
	self.mu.Unlock()
}

func (self *Emulator) StartDiscovery(onFound FoundFunc, onComplete ErrorFunc) {
	stop := make(chan struct{})
	self.mu.Lock()
	self.scanStop = stop
	self.mu.Unlock()
	go func() {
		select {
		case <-time.After(self.Latency):
			onFound(types.Advertisement{Address: self.Address, Name: self.Name, RSSI: -55, HasRSSI: true})
		case <-stop:
			return
		}
		select {
		case <-time.After(10 * self.Latency):
			onComplete(nil)
		case <-stop:
		}
	}()
}

func (self *Emulator) StopDiscovery() {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.scanStop != nil {
		close(self.scanStop)
		self.scanStop = nil
	}
}

func (self *Emulator) Connect(addr mac.Address, onConnected func(), onError ErrorFunc) {
	go func() {
		time.Sleep(self.Latency)
		if addr != self.Address {
			onError(NewError(types.ErrorLinkLost, "connect", nil))
			return
		}
		self.mu.Lock()
		self.connected = true
		self.mu.Unlock()
		onConnected()
	}()
}

func (self *Emulator) Subscribe(addr mac.Address, service, char string, onNotify NotifyFunc, onResult ErrorFunc) {
	self.mu.Lock()
	if !self.connected || addr != self.Address {
		self.mu.Unlock()
		go onResult(NewError(types.ErrorSubscribeFailed, "subscribe", nil))
		return
	}
	if self.stopCh != nil {
		close(self.stopCh)
	}
	stop := make(chan struct{})
	self.stopCh = stop
	self.mu.Unlock()

	go func() {
		onResult(nil)
		tick := time.NewTicker(self.Rate)
		defer tick.Stop()
		begin := time.Now()
		for {
			select {
			case <-stop:
				return
			case t := <-tick.C:
				for _, b := range self.Frames(t.Sub(begin).Seconds()) {
					onNotify(b)
				}
			}
		}
	}()
}

// Frames encodes synthetic slow rotation around X at time t seconds.
func (self *Emulator) Frames(t float64) [][]byte {
	phase := 2 * math.Pi * 0.25 * t
	accel := types.Vec3{X: 0, Y: float32(math.Sin(phase)), Z: float32(math.Cos(phase))}
	gyro := types.Vec3{X: float32(90 * math.Cos(phase)), Y: 0, Z: 0}
	switch self.Format {
	case frame.I16x6:
		return [][]byte{frame.EncodeI16x6(accel, gyro)}
	case frame.F32x3Pair:
		// keep gyro triplet recognizable above accel threshold
		gyro.Y = 2 * frame.DefaultAccelThreshold
		return [][]byte{frame.EncodeTriple(accel), frame.EncodeTriple(gyro)}
	}
	return [][]byte{frame.EncodeF32x6(accel, gyro)}
}

func (self *Emulator) Write(addr mac.Address, service, char string, b []byte) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if !self.connected {
		return NewError(types.ErrorLinkLost, "write", nil)
	}
	self.written = append(self.written, append([]byte(nil), b...))
	return nil
}

func (self *Emulator) Disconnect(addr mac.Address) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.connected = false
	if self.stopCh != nil {
		close(self.stopCh)
		self.stopCh = nil
	}
}

// DropLink simulates peripheral going out of range.
func (self *Emulator) DropLink() {
	self.Disconnect(self.Address)
	self.mu.Lock()
	f := self.onLost
	self.mu.Unlock()
	if f != nil {
		f(self.Address, NewError(types.ErrorLinkLost, "link", nil))
	}
}
