package link

import (
	"fmt"
	"time"

	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

// Status is the single current user-visible pipeline state, overwritten on every transition.
type Status struct {
	State   State           `json:"state"`
	Reason  types.ErrorKind `json:"reason"`
	Address mac.Address     `json:"address"`
	Since   time.Time       `json:"since"`
}

func (self Status) Halted() bool {
	return self.State == StateError && self.Reason == types.ErrorPermissionDenied
}

func (self Status) String() string {
	s := self.State.String()
	if !self.Address.IsZero() {
		s += " " + self.Address.String()
	}
	if self.Reason != types.ErrorNone {
		s += fmt.Sprintf(" reason=%s", self.Reason)
	}
	return s
}
