package tele

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/types"
)

//go:generate protoc --go_out=paths=source_relative:. tele.proto

var errNoHandler = fmt.Errorf("command handler not set")

// WriteSamples queues batch for delivery. Implements recorder.Sink.
func (self *Tele) WriteSamples(ss []types.Sample) error {
	if !self.config.Enabled || len(ss) == 0 {
		return nil
	}
	tm := &Telemetry{Samples: make([]*Sample, len(ss))}
	for i, s := range ss {
		tm.Samples[i] = SampleProto(s)
	}
	return errors.Annotatef(self.qpushTelemetry(tm), "tele samples=%d", len(ss))
}

// Report queues link counters.
func (self *Tele) Report(stat link.Stat) error {
	if !self.config.Enabled {
		return nil
	}
	return errors.Annotate(self.qpushTelemetry(&Telemetry{Stat: StatProto(stat)}), "tele report")
}

func (self *Tele) Error(e error) {
	if !self.config.Enabled || e == nil {
		return
	}
	self.log.Debugf("tele.Error: " + errors.ErrorStack(e))
	tm := &Telemetry{Error: &Telemetry_Error{Message: e.Error()}}
	if err := self.qpushTelemetry(tm); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry telemetry_error=%s err=%v", tm.Error.String(), err)
	}
}

// State hands link status to background sender bypassing queue.
// Repeated state is not sent. Safe to call from link loop.
func (self *Tele) State(st link.Status) {
	if !self.config.Enabled || self.stateq == nil {
		return
	}
	s := &State{State: uint32(st.State), Reason: uint32(st.Reason), Time: st.Since.UnixNano()}
	if !st.Address.IsZero() {
		s.Address = st.Address.String()
	}
	self.stmu.Lock()
	same := self.currentState != nil && self.currentState.State == s.State &&
		self.currentState.Reason == s.Reason && self.currentState.Address == s.Address
	if !same {
		self.currentState = s
	}
	self.stmu.Unlock()
	if same {
		return
	}
	self.offerState(s)
}

func (self *Tele) onCommandMessage(ctx context.Context, payload []byte) bool {
	cmd := new(Command)
	if err := proto.Unmarshal(payload, cmd); err != nil {
		self.log.Errorf("tele command parse raw=%x err=%v", payload, err)
		return true
	}
	self.log.Debugf("tele command raw=%x task=%s", payload, cmd.String())

	var err error
	if cmd.Deadline != 0 && time.Now().UnixNano() > cmd.Deadline {
		err = errors.New("deadline")
	} else {
		err = self.dispatchCommand(ctx, cmd)
	}
	self.CommandReplyErr(cmd, err)
	return true
}

func (self *Tele) dispatchCommand(ctx context.Context, cmd *Command) error {
	switch cmd.Task {
	case Command_REPORT, Command_FLUSH:
	default:
		return errors.NotSupportedf("command task=%s", cmd.Task)
	}
	self.cmdmu.Lock()
	f := self.onCommand
	self.cmdmu.Unlock()
	if f == nil {
		return errNoHandler
	}
	return errors.Annotatef(f(ctx, cmd.Task), "command task=%s", cmd.Task)
}

func (self *Tele) CommandReplyErr(c *Command, e error) {
	if !self.config.Enabled {
		return
	}
	r := Response{CommandId: c.Id, INTERNALTopic: c.ReplyTopic}
	if r.INTERNALTopic == "" {
		r.INTERNALTopic = "cr"
	}
	if e != nil {
		r.Error = e.Error()
	}
	if err := self.qpushTagProto(qCommandResponse, &r); err != nil {
		self.log.Error(errors.Annotatef(err, "CRITICAL command=%s response=%s", c.String(), r.String()))
	}
}
