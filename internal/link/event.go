package link

import (
	"fmt"
	"time"

	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

type EventKind uint8

const (
	EventInvalid EventKind = iota
	EventStart
	EventStop
	EventFound
	EventScanComplete
	EventConnected
	EventConnectError
	EventSubscribed
	EventSubscribeFailed
	EventNotify
	EventLinkLost
	// deferred, carry generation token
	EventSettled
	EventSubscribeRetry
	EventRescan
)

var eventNames = [...]string{
	EventInvalid:         "Invalid",
	EventStart:           "Start",
	EventStop:            "Stop",
	EventFound:           "Found",
	EventScanComplete:    "ScanComplete",
	EventConnected:       "Connected",
	EventConnectError:    "ConnectError",
	EventSubscribed:      "Subscribed",
	EventSubscribeFailed: "SubscribeFailed",
	EventNotify:          "Notify",
	EventLinkLost:        "LinkLost",
	EventSettled:         "Settled",
	EventSubscribeRetry:  "SubscribeRetry",
	EventRescan:          "Rescan",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

func (k EventKind) Deferred() bool { return k >= EventSettled }

// RadioResult kinds answer a request issued by the session and carry its generation.
func (k EventKind) RadioResult() bool {
	switch k {
	case EventConnected, EventConnectError, EventSubscribed, EventSubscribeFailed, EventNotify:
		return true
	}
	return false
}

// Tokened events are dropped when their generation is not current.
func (k EventKind) Tokened() bool { return k.Deferred() || k.RadioResult() }

type Event struct {
	Kind    EventKind
	Adv     types.Advertisement // Found
	Addr    mac.Address         // Connected, ConnectError, LinkLost
	Err     error
	ErrKind types.ErrorKind
	Payload []byte // Notify
	Gen     uint64 // deferred and radio results
}

func (e Event) String() string {
	switch e.Kind {
	case EventFound:
		return fmt.Sprintf("Event(Found %s)", e.Adv.String())
	case EventConnected:
		return fmt.Sprintf("Event(Connected %s)", e.Addr)
	case EventConnectError, EventLinkLost, EventSubscribeFailed, EventScanComplete:
		if e.ErrKind != types.ErrorNone || e.Err != nil {
			return fmt.Sprintf("Event(%s %s kind=%s err=%v)", e.Kind, e.Addr, e.ErrKind, e.Err)
		}
	case EventNotify:
		return fmt.Sprintf("Event(Notify len=%d)", len(e.Payload))
	}
	if e.Kind.Tokened() {
		return fmt.Sprintf("Event(%s gen=%d)", e.Kind, e.Gen)
	}
	return fmt.Sprintf("Event(%s)", e.Kind)
}

type EffectKind uint8

const (
	EffectInvalid EffectKind = iota
	EffectStartDiscovery
	EffectStopDiscovery
	EffectConnect
	EffectSubscribe
	EffectWrite
	EffectDisconnect
	EffectSchedule
	EffectCancelTimers
	EffectDeliver
	EffectPublish
)

var effectNames = [...]string{
	EffectInvalid:        "Invalid",
	EffectStartDiscovery: "StartDiscovery",
	EffectStopDiscovery:  "StopDiscovery",
	EffectConnect:        "Connect",
	EffectSubscribe:      "Subscribe",
	EffectWrite:          "Write",
	EffectDisconnect:     "Disconnect",
	EffectSchedule:       "Schedule",
	EffectCancelTimers:   "CancelTimers",
	EffectDeliver:        "Deliver",
	EffectPublish:        "Publish",
}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("EffectKind(%d)", k)
}

// Effect is a request from Step to the executor.
type Effect struct {
	Kind    EffectKind
	Addr    mac.Address
	Payload []byte
	Delay   time.Duration // Schedule
	Event   Event         // Schedule
	Status  Status        // Publish
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectConnect, EffectSubscribe, EffectDisconnect:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Addr)
	case EffectWrite:
		return fmt.Sprintf("Write(%s %x)", e.Addr, e.Payload)
	case EffectSchedule:
		return fmt.Sprintf("Schedule(%s %s)", e.Delay, e.Event.Kind)
	case EffectPublish:
		return fmt.Sprintf("Publish(%s)", e.Status.State)
	}
	return e.Kind.String()
}
