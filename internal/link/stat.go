package link

import (
	"encoding/binary"
	"fmt"

	"github.com/juju/errors"
)

// Stat counters survive restarts via persist.
type Stat struct {
	Sessions          uint32 `json:"sessions"`
	LinkLost          uint32 `json:"link_lost"`
	ConnectErrors     uint32 `json:"connect_errors"`
	SubscribeFailures uint32 `json:"subscribe_failures"`
	DecodeErrors      uint32 `json:"decode_errors"`
	Samples           uint64 `json:"samples"`
}

const (
	statVersion = 1
	statSize    = 1 + 5*4 + 8
)

func (self Stat) String() string {
	return fmt.Sprintf("sessions=%d link_lost=%d connect_errors=%d subscribe_failures=%d decode_errors=%d samples=%d",
		self.Sessions, self.LinkLost, self.ConnectErrors, self.SubscribeFailures, self.DecodeErrors, self.Samples)
}

func (self *Stat) Add(other Stat) {
	self.Sessions += other.Sessions
	self.LinkLost += other.LinkLost
	self.ConnectErrors += other.ConnectErrors
	self.SubscribeFailures += other.SubscribeFailures
	self.DecodeErrors += other.DecodeErrors
	self.Samples += other.Samples
}

func (self *Stat) MarshalBinary() ([]byte, error) {
	b := make([]byte, statSize)
	b[0] = statVersion
	binary.BigEndian.PutUint32(b[1:], self.Sessions)
	binary.BigEndian.PutUint32(b[5:], self.LinkLost)
	binary.BigEndian.PutUint32(b[9:], self.ConnectErrors)
	binary.BigEndian.PutUint32(b[13:], self.SubscribeFailures)
	binary.BigEndian.PutUint32(b[17:], self.DecodeErrors)
	binary.BigEndian.PutUint64(b[21:], self.Samples)
	return b, nil
}

func (self *Stat) UnmarshalBinary(b []byte) error {
	if len(b) != statSize || b[0] != statVersion {
		return errors.NotValidf("link stat len=%d", len(b))
	}
	self.Sessions = binary.BigEndian.Uint32(b[1:])
	self.LinkLost = binary.BigEndian.Uint32(b[5:])
	self.ConnectErrors = binary.BigEndian.Uint32(b[9:])
	self.SubscribeFailures = binary.BigEndian.Uint32(b[13:])
	self.DecodeErrors = binary.BigEndian.Uint32(b[17:])
	self.Samples = binary.BigEndian.Uint64(b[21:])
	return nil
}
