package radio

import (
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
	"tinygo.org/x/bluetooth"
)

const DefaultScanWindow = 10 * time.Second

type BluetoothConfig struct {
	Adapter    string // BlueZ adapter name for power check, e.g. hci0
	ScanWindow time.Duration
}

// Bluetooth is Radio over tinygo.org/x/bluetooth (BlueZ on Linux).
type Bluetooth struct {
	log     *log2.Log
	config  BluetoothConfig
	adapter *bluetooth.Adapter

	mu          sync.Mutex
	addrs       map[mac.Address]bluetooth.Address // learned from scan results
	conns       map[mac.Address]*btConn
	onLost      LostFunc
	scanning    bool
	scanStopped bool
}

// Covers both pointer and value Device across library versions.
type btDevice interface {
	DiscoverServices([]bluetooth.UUID) ([]bluetooth.DeviceService, error)
	Disconnect() error
}

type btConn struct {
	dev   btDevice
	chars map[bluetooth.UUID]bluetooth.DeviceCharacteristic
}

var _ Radio = &Bluetooth{}

func NewBluetooth(log *log2.Log, config BluetoothConfig) *Bluetooth {
	if config.ScanWindow <= 0 {
		config.ScanWindow = DefaultScanWindow
	}
	if config.Adapter == "" {
		config.Adapter = DefaultAdapterName
	}
	return &Bluetooth{
		log:     log,
		config:  config,
		adapter: bluetooth.DefaultAdapter,
		addrs:   make(map[mac.Address]bluetooth.Address),
		conns:   make(map[mac.Address]*btConn),
	}
}

// Enable powers up the host adapter. Permission problems are reported as ErrorPermissionDenied.
func (self *Bluetooth) Enable() error {
	powered, err := AdapterPowered(self.config.Adapter)
	switch {
	case err != nil && Classify(err) == types.ErrorPermissionDenied:
		return NewError(types.ErrorPermissionDenied, "enable", err)
	case err != nil:
		self.log.Debugf("radio adapter=%s powered err=%v", self.config.Adapter, err)
	case !powered:
		self.log.Infof("radio adapter=%s is powered off", self.config.Adapter)
	}
	if err := self.adapter.Enable(); err != nil {
		return NewError(Classify(err), "enable", err)
	}
	self.adapter.SetConnectHandler(self.onConnectChange)
	return nil
}

func (self *Bluetooth) SetLinkLostHandler(f LostFunc) {
	self.mu.Lock()
	self.onLost = f
	self.mu.Unlock()
}

func (self *Bluetooth) onConnectChange(device bluetooth.Address, connected bool) {
	if connected {
		return
	}
	addr, err := mac.Parse(device.String())
	if err != nil {
		self.log.Debugf("radio disconnect unknown address=%s", device.String())
		return
	}
	self.mu.Lock()
	_, known := self.conns[addr]
	delete(self.conns, addr)
	f := self.onLost
	self.mu.Unlock()
	if known && f != nil {
		f(addr, NewError(types.ErrorLinkLost, "link", nil))
	}
}

func (self *Bluetooth) StartDiscovery(onFound FoundFunc, onComplete ErrorFunc) {
	self.mu.Lock()
	if self.scanning {
		self.mu.Unlock()
		self.log.Debugf("radio discovery already running")
		return
	}
	self.scanning = true
	self.scanStopped = false
	self.mu.Unlock()

	timer := time.AfterFunc(self.config.ScanWindow, func() {
		if err := self.adapter.StopScan(); err != nil {
			self.log.Debugf("radio scan window StopScan err=%v", err)
		}
	})
	go func() {
		err := self.adapter.Scan(func(_ *bluetooth.Adapter, r bluetooth.ScanResult) {
			addr, err := mac.Parse(r.Address.String())
			if err != nil {
				return
			}
			self.mu.Lock()
			self.addrs[addr] = r.Address
			self.mu.Unlock()
			onFound(types.Advertisement{
				Address: addr,
				Name:    r.LocalName(),
				RSSI:    r.RSSI,
				HasRSSI: r.RSSI != 0,
			})
		})
		timer.Stop()
		self.mu.Lock()
		stopped := self.scanStopped
		self.scanning = false
		self.mu.Unlock()
		if err != nil {
			err = NewError(Classify(err), "scan", err)
		}
		if !stopped || err != nil {
			onComplete(err)
		}
	}()
}

func (self *Bluetooth) StopDiscovery() {
	self.mu.Lock()
	if !self.scanning {
		self.mu.Unlock()
		return
	}
	self.scanStopped = true
	self.mu.Unlock()
	if err := self.adapter.StopScan(); err != nil {
		self.log.Debugf("radio StopScan err=%v", err)
	}
}

func (self *Bluetooth) Connect(addr mac.Address, onConnected func(), onError ErrorFunc) {
	self.mu.Lock()
	ba, ok := self.addrs[addr]
	self.mu.Unlock()
	if !ok {
		m, err := bluetooth.ParseMAC(addr.String())
		if err != nil {
			onError(NewError(types.ErrorUnknown, "connect", err))
			return
		}
		ba.MAC = m
	}
	go func() {
		dev, err := self.adapter.Connect(ba, bluetooth.ConnectionParams{})
		if err != nil {
			onError(NewError(Classify(err), "connect", err))
			return
		}
		self.mu.Lock()
		self.conns[addr] = &btConn{dev: dev, chars: make(map[bluetooth.UUID]bluetooth.DeviceCharacteristic)}
		self.mu.Unlock()
		onConnected()
	}()
}

func (self *Bluetooth) Subscribe(addr mac.Address, service, char string, onNotify NotifyFunc, onResult ErrorFunc) {
	go func() {
		onResult(self.subscribe(addr, service, char, onNotify))
	}()
}

func (self *Bluetooth) subscribe(addr mac.Address, service, char string, onNotify NotifyFunc) error {
	c, err := self.lookup(addr)
	if err != nil {
		return err
	}
	ch, err := self.characteristic(c, service, char)
	if err != nil {
		return err
	}
	err = ch.EnableNotifications(func(buf []byte) {
		// library reuses buffer
		onNotify(append([]byte(nil), buf...))
	})
	if err != nil {
		return NewError(subscribeKind(err), "subscribe", err)
	}
	return nil
}

func (self *Bluetooth) Write(addr mac.Address, service, char string, b []byte) error {
	c, err := self.lookup(addr)
	if err != nil {
		return err
	}
	ch, err := self.characteristic(c, service, char)
	if err != nil {
		return err
	}
	if _, err = ch.WriteWithoutResponse(b); err != nil {
		return NewError(Classify(err), "write", err)
	}
	return nil
}

func (self *Bluetooth) Disconnect(addr mac.Address) {
	self.mu.Lock()
	c, ok := self.conns[addr]
	delete(self.conns, addr)
	self.mu.Unlock()
	if !ok {
		return
	}
	if err := c.dev.Disconnect(); err != nil {
		self.log.Debugf("radio disconnect %s err=%v", addr, err)
	}
}

func (self *Bluetooth) lookup(addr mac.Address) (*btConn, error) {
	self.mu.Lock()
	c, ok := self.conns[addr]
	self.mu.Unlock()
	if !ok {
		return nil, NewError(types.ErrorLinkLost, "lookup", errors.Errorf("not connected %s", addr))
	}
	return c, nil
}

// characteristic discovers and caches GATT characteristic by UUID.
func (self *Bluetooth) characteristic(c *btConn, service, char string) (bluetooth.DeviceCharacteristic, error) {
	var none bluetooth.DeviceCharacteristic
	su, err := bluetooth.ParseUUID(service)
	if err != nil {
		return none, errors.Annotatef(err, "service uuid=%s", service)
	}
	cu, err := bluetooth.ParseUUID(char)
	if err != nil {
		return none, errors.Annotatef(err, "characteristic uuid=%s", char)
	}
	self.mu.Lock()
	cached, ok := c.chars[cu]
	self.mu.Unlock()
	if ok {
		return cached, nil
	}

	srvcs, err := c.dev.DiscoverServices([]bluetooth.UUID{su})
	if err != nil {
		return none, NewError(subscribeKind(err), "discover services", err)
	}
	if len(srvcs) == 0 {
		return none, NewError(types.ErrorSubscribeFailed, "discover services", errors.NotFoundf("service %s", service))
	}
	srvc := srvcs[0]
	chars, err := srvc.DiscoverCharacteristics([]bluetooth.UUID{cu})
	if err != nil {
		return none, NewError(subscribeKind(err), "discover characteristics", err)
	}
	if len(chars) == 0 {
		return none, NewError(types.ErrorSubscribeFailed, "discover characteristics", errors.NotFoundf("characteristic %s", char))
	}
	found := chars[0]
	self.mu.Lock()
	c.chars[cu] = found
	self.mu.Unlock()
	return found, nil
}

// Anything but permission problems during subscribe is retried as SubscribeFailed.
func subscribeKind(err error) types.ErrorKind {
	if k := Classify(err); k == types.ErrorPermissionDenied {
		return k
	}
	return types.ErrorSubscribeFailed
}
