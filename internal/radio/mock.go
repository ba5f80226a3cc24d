package radio

import (
	"fmt"
	"sync"

	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

// Mock records requests and lets tests drive callbacks by hand.
type Mock struct {
	mu    sync.Mutex
	calls []string

	onFound    FoundFunc
	onComplete ErrorFunc
	onLost     LostFunc
	connects   map[mac.Address]mockConnect
	onNotify   NotifyFunc
	onResult   ErrorFunc
	written    [][]byte

	WriteErr error
}

type mockConnect struct {
	onConnected func()
	onError     ErrorFunc
}

var _ Radio = &Mock{}

func NewMock() *Mock {
	return &Mock{connects: make(map[mac.Address]mockConnect)}
}

func (self *Mock) record(format string, args ...interface{}) {
	self.calls = append(self.calls, fmt.Sprintf(format, args...))
}

// Calls returns requests received since last call, e.g. "connect 28:CD:C1:14:B8:3C".
func (self *Mock) Calls() []string {
	self.mu.Lock()
	defer self.mu.Unlock()
	cs := self.calls
	self.calls = nil
	return cs
}

func (self *Mock) Written() [][]byte {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([][]byte(nil), self.written...)
}

func (self *Mock) StartDiscovery(onFound FoundFunc, onComplete ErrorFunc) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("discovery start")
	self.onFound, self.onComplete = onFound, onComplete
}

func (self *Mock) StopDiscovery() {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("discovery stop")
	self.onFound, self.onComplete = nil, nil
}

func (self *Mock) Connect(addr mac.Address, onConnected func(), onError ErrorFunc) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("connect %s", addr)
	self.connects[addr] = mockConnect{onConnected, onError}
}

func (self *Mock) Subscribe(addr mac.Address, service, char string, onNotify NotifyFunc, onResult ErrorFunc) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("subscribe %s %s", addr, char)
	self.onNotify, self.onResult = onNotify, onResult
}

func (self *Mock) Write(addr mac.Address, service, char string, b []byte) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("write %s %x", addr, b)
	if self.WriteErr != nil {
		return self.WriteErr
	}
	self.written = append(self.written, append([]byte(nil), b...))
	return nil
}

func (self *Mock) Disconnect(addr mac.Address) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.record("disconnect %s", addr)
	delete(self.connects, addr)
	self.onNotify, self.onResult = nil, nil
}

func (self *Mock) SetLinkLostHandler(f LostFunc) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.onLost = f
}

// Test drivers below return false when nobody listens.

func (self *Mock) Advertise(adv types.Advertisement) bool {
	self.mu.Lock()
	f := self.onFound
	self.mu.Unlock()
	if f == nil {
		return false
	}
	f(adv)
	return true
}

func (self *Mock) CompleteScan(err error) bool {
	self.mu.Lock()
	f := self.onComplete
	self.onFound, self.onComplete = nil, nil
	self.mu.Unlock()
	if f == nil {
		return false
	}
	f(err)
	return true
}

func (self *Mock) AcceptConnect(addr mac.Address) bool {
	self.mu.Lock()
	c, ok := self.connects[addr]
	self.mu.Unlock()
	if !ok {
		return false
	}
	c.onConnected()
	return true
}

func (self *Mock) FailConnect(addr mac.Address, err error) bool {
	self.mu.Lock()
	c, ok := self.connects[addr]
	delete(self.connects, addr)
	self.mu.Unlock()
	if !ok {
		return false
	}
	c.onError(err)
	return true
}

func (self *Mock) SubscribeResult(err error) bool {
	self.mu.Lock()
	f := self.onResult
	self.onResult = nil
	self.mu.Unlock()
	if f == nil {
		return false
	}
	f(err)
	return true
}

// Subscription returns current subscribe callbacks, kept valid after Disconnect.
func (self *Mock) Subscription() (NotifyFunc, ErrorFunc) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.onNotify, self.onResult
}

func (self *Mock) Notify(b []byte) bool {
	self.mu.Lock()
	f := self.onNotify
	self.mu.Unlock()
	if f == nil {
		return false
	}
	f(b)
	return true
}

func (self *Mock) LoseLink(addr mac.Address, err error) bool {
	self.mu.Lock()
	f := self.onLost
	delete(self.connects, addr)
	self.mu.Unlock()
	if f == nil {
		return false
	}
	f(addr, err)
	return true
}
