// Package tele delivers IMU sample batches, link state and counters to a
// remote MQTT broker.
package tele

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
	"github.com/temoto/spq"
)

const DefaultNetworkTimeout = 30 * time.Second

// Tele contract:
// - Init() fails only with invalid config, network issues ignored
// - WriteSamples/Report/Error block at most for disk write,
//   network may be slow or absent, messages will be delivered in background
// - Telemetry/Response messages delivered at least once
// - State messages may be lost, only the latest pending one is sent
// - State never blocks the caller
type Tele struct { //nolint:maligned
	config    Config
	log       *log2.Log
	transport Transporter
	q         *spq.Queue
	alive     *alive.Alive
	backoff   helpers.Backoff
	seq       uint64

	cmdmu     sync.Mutex
	onCommand CommandFunc

	stmu         sync.Mutex
	currentState *State
	stateq       chan *State // latest wins
}

// CommandFunc executes remote command, returned error is sent in response.
type CommandFunc func(ctx context.Context, task Command_Task) error

func New() *Tele {
	return &Tele{}
}
func NewWithTransporter(trans Transporter) *Tele {
	return &Tele{transport: trans}
}

func (self *Tele) Init(ctx context.Context, log *log2.Log, config Config) error {
	self.config = config
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	if !self.config.Enabled {
		self.log.Debugf("tele disabled")
		return nil
	}
	if self.config.PersistPath == "" {
		return errors.NotValidf("tele enabled but persist_path=empty")
	}
	self.backoff = helpers.Backoff{Min: 100 * time.Millisecond, Max: 30 * time.Second, K: 2}

	// test code sets .transport
	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	will := self.marshalState(&State{State: uint32(link.StateIdle)})
	if err := self.transport.Init(ctx, log, self.config, self.onCommandMessage, will); err != nil {
		return errors.Annotate(err, "tele transport")
	}

	var err error
	self.q, err = spq.Open(self.config.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}

	self.stateq = make(chan *State, 1)
	self.alive = alive.NewAlive()
	self.alive.Add(2)
	go self.qworker()
	go self.sworker()
	return nil
}

func (self *Tele) Enabled() bool { return self.config.Enabled }

// OnCommand sets remote command executor. Without one commands are answered with error.
func (self *Tele) OnCommand(f CommandFunc) {
	self.cmdmu.Lock()
	self.onCommand = f
	self.cmdmu.Unlock()
}

// Close stops queue worker and transport. Undelivered messages stay in queue for next run.
func (self *Tele) Close() error {
	if self.alive == nil {
		return nil
	}
	self.alive.Stop()
	self.q.Close()
	self.alive.Wait()
	self.transport.Close()
	self.alive = nil
	return nil
}

// denote value type in persistent queue bytes form
const (
	qCommandResponse byte = 1
	qTelemetry       byte = 2
)

func (self *Tele) qworker() {
	defer self.alive.Done()
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			// success path
			b := box.Bytes()
			var del bool
			del, err = self.qhandle(b)
			if err != nil {
				self.log.Errorf("tele qhandle b=%x err=%v", b, err)
			}
			if del {
				if err = self.q.Delete(box); err != nil {
					self.log.Errorf("tele qhandle Delete b=%x err=%v", b, err)
				}
			} else {
				if err = self.q.DeletePush(box); err != nil {
					self.log.Errorf("tele qhandle DeletePush b=%x err=%v", b, err)
				}
			}
			d := self.backoff.DelayAfter(del)
			if n := self.backoff.Failures(); n != 0 && n%10 == 0 {
				self.log.Infof("tele delivery failing attempts=%d next=%v", n, d)
			}
			if !self.sleep(d) {
				return
			}

		case spq.ErrClosed:
			if !self.alive.IsRunning() { // success path
				return
			}
			self.log.Errorf("CRITICAL tele spq closed unexpectedly")
			return

		default:
			self.log.Errorf("CRITICAL tele spq err=%v", err)
			if !self.sleep(self.backoff.DelayAfter(false)) {
				return
			}
		}
	}
}

func (self *Tele) sworker() {
	defer self.alive.Done()
	stopch := self.alive.StopChan()
	for {
		select {
		case s := <-self.stateq:
			if !self.transport.SendState(self.marshalState(s)) {
				self.log.Debugf("tele state=%d reason=%d not sent", s.State, s.Reason)
			}
		case <-stopch:
			return
		}
	}
}

// offerState replaces pending state, never blocks.
func (self *Tele) offerState(s *State) {
	for {
		select {
		case self.stateq <- s:
			return
		default:
		}
		select {
		case old := <-self.stateq:
			self.log.Debugf("tele state=%d superseded", old.State)
		default:
		}
	}
}

// sleep returns false when stopped.
func (self *Tele) sleep(d time.Duration) bool {
	if d <= 0 {
		return self.alive.IsRunning()
	}
	tmr := time.NewTimer(d)
	defer tmr.Stop()
	select {
	case <-tmr.C:
		return true
	case <-self.alive.StopChan():
		return false
	}
}

func (self *Tele) qhandle(b []byte) (bool, error) {
	if len(b) == 0 {
		return true, errors.New("tele spq peek=empty")
	}

	switch b[0] {
	case qCommandResponse:
		var r Response
		if err := proto.Unmarshal(b[1:], &r); err != nil {
			return true, err
		}
		return self.qsendResponse(&r), nil

	case qTelemetry:
		var tm Telemetry
		if err := proto.Unmarshal(b[1:], &tm); err != nil {
			return true, err
		}
		return self.qsendTelemetry(&tm), nil

	default:
		return true, errors.Errorf("unknown kind=%d", b[0])
	}
}

func (self *Tele) qpushTelemetry(tm *Telemetry) error {
	tm.ClientId = self.config.clientID()
	if tm.Time == 0 {
		tm.Time = time.Now().UnixNano()
	}
	tm.Seq = atomic.AddUint64(&self.seq, 1)
	return self.qpushTagProto(qTelemetry, tm)
}

func (self *Tele) qpushTagProto(tag byte, pb proto.Message) error {
	b, err := proto.Marshal(pb)
	if err != nil {
		return errors.Annotate(err, "tele marshal")
	}
	buf := make([]byte, 0, len(b)+1)
	buf = append(buf, tag)
	buf = append(buf, b...)
	return self.q.Push(buf)
}

func (self *Tele) qsendResponse(r *Response) bool {
	// do not serialize INTERNAL_topic field
	wireResponse := *r
	wireResponse.INTERNALTopic = ""
	payload, err := proto.Marshal(&wireResponse)
	if err != nil {
		self.log.Errorf("CRITICAL response Marshal r=%s err=%v", r.String(), err)
		return true // retry will not help
	}
	return self.transport.SendCommandResponse(r.INTERNALTopic, payload)
}

func (self *Tele) qsendTelemetry(tm *Telemetry) bool {
	payload, err := proto.Marshal(tm)
	if err != nil {
		self.log.Errorf("CRITICAL telemetry Marshal seq=%d err=%v", tm.Seq, err)
		return true // retry will not help
	}
	return self.transport.SendTelemetry(payload)
}

func (self *Tele) marshalState(s *State) []byte {
	b, err := proto.Marshal(s)
	if err != nil {
		self.log.Errorf("CRITICAL state Marshal s=%s err=%v", s.String(), err)
	}
	return b
}

func SampleProto(s types.Sample) *Sample {
	return &Sample{
		T:  s.Timestamp,
		Ax: s.Accel.X, Ay: s.Accel.Y, Az: s.Accel.Z,
		Gx: s.Gyro.X, Gy: s.Gyro.Y, Gz: s.Gyro.Z,
	}
}

func StatProto(s link.Stat) *Stat {
	return &Stat{
		Sessions:          s.Sessions,
		LinkLost:          s.LinkLost,
		ConnectErrors:     s.ConnectErrors,
		SubscribeFailures: s.SubscribeFailures,
		DecodeErrors:      s.DecodeErrors,
		Samples:           s.Samples,
	}
}
