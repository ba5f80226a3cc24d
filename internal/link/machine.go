// Package link keeps one BLE IMU peripheral connected and streaming.
//
// Step is a pure transition function over Session, Machine is its executor:
// single goroutine owning session, filter and decoder, driven by events posted
// from radio callbacks and timers.
package link

import (
	"context"
	"sync"
	"time"

	"github.com/temoto/imulink/internal/filter"
	"github.com/temoto/imulink/internal/frame"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/radio"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
)

type GATT struct {
	Service string
	Notify  string
	Write   string
}

func DefaultGATT() GATT {
	return GATT{Service: radio.NUSService, Notify: radio.NUSTX, Write: radio.NUSRX}
}

type Config struct {
	Options   Options
	Target    filter.Target
	GATT      GATT
	Format    frame.Format
	Frame     frame.Options
	Scheduler Scheduler // nil = time.AfterFunc
}

type (
	SampleFunc func(types.Sample)
	StatusFunc func(Status)
)

const decodeLogEvery = 500

type Machine struct {
	log     *log2.Log
	radio   radio.Radio
	sched   Scheduler
	opt     Options
	gatt    GATT
	filter  *filter.Filter
	decoder *frame.Decoder
	begin   time.Time

	onSample []SampleFunc
	onStatus []StatusFunc

	qmu   sync.Mutex
	queue []Event
	wake  chan struct{}

	// loop owned
	session Session

	tmu      sync.Mutex
	timers   map[uint64]Timer
	timerSeq uint64

	smu    sync.Mutex
	status Status
	stat   Stat
}

func New(log *log2.Log, r radio.Radio, config Config) *Machine {
	if config.Scheduler == nil {
		config.Scheduler = NewTimeScheduler()
	}
	if config.GATT == (GATT{}) {
		config.GATT = DefaultGATT()
	}
	if config.Format == frame.FormatInvalid {
		config.Format = frame.F32x6
	}
	self := &Machine{
		log:     log,
		radio:   r,
		sched:   config.Scheduler,
		opt:     config.Options,
		gatt:    config.GATT,
		filter:  filter.New(config.Target),
		decoder: frame.NewDecoder(config.Format, config.Frame),
		begin:   time.Now(),
		wake:    make(chan struct{}, 1),
		timers:  make(map[uint64]Timer),
		status:  Status{State: StateIdle, Since: time.Now()},
	}
	r.SetLinkLostHandler(func(addr mac.Address, err error) {
		self.Post(Event{Kind: EventLinkLost, Addr: addr, Err: err, ErrKind: radio.Classify(err)})
	})
	return self
}

// OnSample registers consumer of decoded samples. Call before Run.
// Consumers run on the machine goroutine and must not block.
func (self *Machine) OnSample(f SampleFunc) { self.onSample = append(self.onSample, f) }

// OnStatus registers status observer. Call before Run.
func (self *Machine) OnStatus(f StatusFunc) { self.onStatus = append(self.onStatus, f) }

func (self *Machine) Start() { self.Post(Event{Kind: EventStart}) }
func (self *Machine) Stop()  { self.Post(Event{Kind: EventStop}) }

// Post enqueues event, safe from any goroutine, never blocks.
func (self *Machine) Post(ev Event) {
	self.qmu.Lock()
	self.queue = append(self.queue, ev)
	self.qmu.Unlock()
	select {
	case self.wake <- struct{}{}:
	default:
	}
}

// Run processes events until ctx is done, then stops the session.
func (self *Machine) Run(ctx context.Context) {
	self.log.Debugf("link loop begin")
	for {
		select {
		case <-ctx.Done():
			self.Post(Event{Kind: EventStop})
			self.Drain()
			self.log.Debugf("link loop end")
			return
		case <-self.wake:
			self.Drain()
		}
	}
}

// Drain processes queued events synchronously, returns count.
// Must not be called concurrently with Run.
func (self *Machine) Drain() int {
	n := 0
	for {
		self.qmu.Lock()
		q := self.queue
		self.queue = nil
		self.qmu.Unlock()
		if len(q) == 0 {
			return n
		}
		for _, ev := range q {
			self.handle(ev)
			n++
		}
	}
}

func (self *Machine) Status() Status {
	self.smu.Lock()
	defer self.smu.Unlock()
	return self.status
}

func (self *Machine) Stat() Stat {
	self.smu.Lock()
	defer self.smu.Unlock()
	return self.stat
}

// RestoreStat adds counters saved by previous run.
func (self *Machine) RestoreStat(s Stat) {
	self.smu.Lock()
	self.stat.Add(s)
	self.smu.Unlock()
}

// Timestamp is seconds since machine creation, monotonic.
func (self *Machine) Timestamp() float64 { return time.Since(self.begin).Seconds() }

func (self *Machine) handle(ev Event) {
	prev := self.session
	next, effs := Step(prev, self.filter, ev, self.opt)
	self.session = next
	if ev.Kind != EventNotify {
		self.log.Debugf("link %s state=%s %s effects=%v", ev.String(), prev.State, next.State, effs)
	}
	self.count(ev, prev, next)
	for _, e := range effs {
		self.apply(e)
	}
}

func (self *Machine) count(ev Event, prev, next Session) {
	if prev.State == next.State && prev.LastError == next.LastError {
		return
	}
	self.smu.Lock()
	defer self.smu.Unlock()
	switch {
	case next.State == StateConnected && prev.State == StateConnecting:
		self.stat.Sessions++
	case ev.Kind == EventConnectError:
		self.stat.ConnectErrors++
	case ev.Kind == EventLinkLost:
		self.stat.LinkLost++
	case ev.Kind == EventSubscribeFailed:
		self.stat.SubscribeFailures++
	}
}

func (self *Machine) apply(e Effect) {
	switch e.Kind {
	case EffectStartDiscovery:
		self.radio.StartDiscovery(
			func(adv types.Advertisement) { self.Post(Event{Kind: EventFound, Adv: adv}) },
			func(err error) {
				self.Post(Event{Kind: EventScanComplete, Err: err, ErrKind: radio.Classify(err)})
			})

	case EffectStopDiscovery:
		self.radio.StopDiscovery()

	case EffectConnect:
		addr, gen := e.Addr, self.session.Generation
		self.log.Infof("link connecting %s", addr)
		self.radio.Connect(addr,
			func() { self.Post(Event{Kind: EventConnected, Addr: addr, Gen: gen}) },
			func(err error) {
				self.Post(Event{Kind: EventConnectError, Addr: addr, Err: err, ErrKind: radio.Classify(err), Gen: gen})
			})

	case EffectSubscribe:
		gen := self.session.Generation
		self.decoder.Reset()
		self.radio.Subscribe(e.Addr, self.gatt.Service, self.gatt.Notify,
			func(b []byte) { self.Post(Event{Kind: EventNotify, Payload: b, Gen: gen}) },
			func(err error) {
				if err == nil {
					self.Post(Event{Kind: EventSubscribed, Gen: gen})
					return
				}
				self.Post(Event{Kind: EventSubscribeFailed, Err: err, ErrKind: radio.Classify(err), Gen: gen})
			})

	case EffectWrite:
		if err := self.radio.Write(e.Addr, self.gatt.Service, self.gatt.Write, e.Payload); err != nil {
			self.log.Errorf("link write start command %s err=%v", e.Addr, err)
		}

	case EffectDisconnect:
		self.radio.Disconnect(e.Addr)

	case EffectSchedule:
		self.after(e.Delay, e.Event)

	case EffectCancelTimers:
		self.cancelTimers()

	case EffectDeliver:
		self.deliver(e.Payload)

	case EffectPublish:
		self.publish(e.Status)

	default:
		self.log.Errorf("code error link unknown effect=%s", e.Kind)
	}
}

func (self *Machine) after(d time.Duration, ev Event) {
	self.tmu.Lock()
	defer self.tmu.Unlock()
	self.timerSeq++
	id := self.timerSeq
	self.timers[id] = self.sched.AfterFunc(d, func() {
		self.tmu.Lock()
		delete(self.timers, id)
		self.tmu.Unlock()
		self.Post(ev)
	})
}

func (self *Machine) cancelTimers() {
	self.tmu.Lock()
	defer self.tmu.Unlock()
	for id, t := range self.timers {
		t.Stop()
		delete(self.timers, id)
	}
}

func (self *Machine) deliver(b []byte) {
	s, ok, err := self.decoder.Decode(b, self.Timestamp())
	if err != nil {
		self.smu.Lock()
		self.stat.DecodeErrors++
		n := self.stat.DecodeErrors
		self.smu.Unlock()
		if n <= 10 || n%decodeLogEvery == 0 {
			self.log.Errorf("link decode (total=%d) %v", n, err)
		}
		return
	}
	if !ok {
		return
	}
	self.smu.Lock()
	self.stat.Samples++
	self.smu.Unlock()
	for _, f := range self.onSample {
		f(s)
	}
}

func (self *Machine) publish(st Status) {
	st.Since = time.Now()
	self.smu.Lock()
	self.status = st
	self.smu.Unlock()
	self.log.Infof("link status %s", st.String())
	for _, f := range self.onStatus {
		f(st)
	}
}
