// Package filter picks the target peripheral out of discovery results.
package filter

import (
	"strings"

	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

// Target with non-zero MAC matches by address only and ignores Names.
// Otherwise advertised name must contain one of Names, case insensitive.
type Target struct {
	MAC   mac.Address
	Names []string
}

func (self Target) String() string {
	if !self.MAC.IsZero() {
		return "mac=" + self.MAC.String()
	}
	return "names=" + strings.Join(self.Names, ",")
}

// Filter is owned by the link state machine, not safe for concurrent use.
type Filter struct {
	target    Target
	names     []string // lowercase
	seen      map[mac.Address]struct{}
	connected map[mac.Address]struct{}
}

func New(target Target) *Filter {
	self := &Filter{
		target:    target,
		seen:      make(map[mac.Address]struct{}),
		connected: make(map[mac.Address]struct{}),
	}
	for _, n := range target.Names {
		if n = strings.TrimSpace(n); n != "" {
			self.names = append(self.names, strings.ToLower(n))
		}
	}
	return self
}

func (self *Filter) Target() Target { return self.target }

// Match reports whether adv is the peripheral to connect to.
// Positive result marks address seen for current scan cycle.
func (self *Filter) Match(adv types.Advertisement) bool {
	if adv.Address.IsZero() {
		return false
	}
	if _, ok := self.seen[adv.Address]; ok {
		return false
	}
	if _, ok := self.connected[adv.Address]; ok {
		return false
	}
	if !self.accept(adv) {
		return false
	}
	self.seen[adv.Address] = struct{}{}
	return true
}

func (self *Filter) accept(adv types.Advertisement) bool {
	if !self.target.MAC.IsZero() {
		return mac.Equal(adv.Address, self.target.MAC)
	}
	if adv.Name == "" {
		return false
	}
	name := strings.ToLower(adv.Name)
	for _, n := range self.names {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

// Explain is Match without side effects, for diagnostics.
func (self *Filter) Explain(adv types.Advertisement) string {
	switch {
	case adv.Address.IsZero():
		return "no address"
	case self.isSeen(adv.Address):
		return "seen this cycle"
	case self.IsConnected(adv.Address):
		return "connected"
	case !self.accept(adv):
		if !self.target.MAC.IsZero() {
			return "mac mismatch"
		}
		return "name mismatch"
	}
	return "match"
}

func (self *Filter) NewCycle() {
	for k := range self.seen {
		delete(self.seen, k)
	}
}

func (self *Filter) MarkConnected(a mac.Address)  { self.connected[a] = struct{}{} }
func (self *Filter) ClearConnected(a mac.Address) { delete(self.connected, a) }
func (self *Filter) AnyConnected() bool           { return len(self.connected) != 0 }

func (self *Filter) IsConnected(a mac.Address) bool {
	_, ok := self.connected[a]
	return ok
}

func (self *Filter) isSeen(a mac.Address) bool {
	_, ok := self.seen[a]
	return ok
}

func (self *Filter) Reset() {
	self.NewCycle()
	for k := range self.connected {
		delete(self.connected, k)
	}
}
