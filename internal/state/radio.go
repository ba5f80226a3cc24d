package state

import (
	"sync"
	"sync/atomic"

	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/radio"
)

// DefaultEmulatorAddress is used by emulator when target is selected by name.
var DefaultEmulatorAddress = mac.MustParse("28:CD:C1:14:B8:3C")

// InitRadio selects preset Radio, emulator or host bluetooth adapter. Safe to call repeatedly.
func (g *Global) InitRadio() error {
	return g.radioOnce.do(func() error {
		if g.Radio != nil {
			return nil
		}
		if g.Emulate {
			emu := g.Config.Emulator()
			g.Log.Infof("radio emulator address=%s name=%s format=%s", emu.Address, emu.Name, emu.Format)
			g.Radio = emu
			return nil
		}
		bt := radio.NewBluetooth(g.Log, g.Config.BluetoothConfig())
		if err := bt.Enable(); err != nil {
			return errors.Annotatef(err, "adapter=%s", g.Config.Link.Adapter)
		}
		g.Radio = bt
		return nil
	})
}

// Emulator is synthetic peripheral matching configured target and format.
func (c *Config) Emulator() *radio.Emulator {
	addr := c.target.MAC
	if addr.IsZero() {
		addr = DefaultEmulatorAddress
	}
	name := DefaultTargetNames[0]
	if len(c.target.Names) != 0 {
		name = c.target.Names[0]
	}
	return radio.NewEmulator(addr, name, c.format)
}

type once struct {
	sync.Mutex
	called uint32 // atomic bool
	err    error
}

func (o *once) done() bool {
	return atomic.LoadUint32(&o.called) == 1
}

func (o *once) do(f func() error) error {
	if o.done() { // fast path
		return o.err
	}
	o.Lock()
	defer o.Unlock()
	if o.done() {
		return o.err
	}
	o.err = f()
	atomic.StoreUint32(&o.called, 1)
	return o.err
}
