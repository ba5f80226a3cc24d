package link

import (
	"time"

	"github.com/temoto/imulink/internal/filter"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

const (
	DefaultSettle            = 300 * time.Millisecond
	DefaultSubscribeRetry    = 500 * time.Millisecond
	DefaultSubscribeAttempts = 2
	DefaultCooldownLinkLost  = 400 * time.Millisecond
	DefaultCooldownConnect   = 2 * time.Second
	DefaultCooldownSubscribe = 5 * time.Second
	DefaultRescan            = 5 * time.Second
)

type Options struct {
	Settle            time.Duration // after connect, before subscribe
	SubscribeRetry    time.Duration
	SubscribeAttempts int
	CooldownLinkLost  time.Duration
	CooldownConnect   time.Duration
	CooldownSubscribe time.Duration
	Rescan            time.Duration // after scan window without connection
	StartCommand      []byte        // optional, written after subscribe
}

func DefaultOptions() Options {
	return Options{
		Settle:            DefaultSettle,
		SubscribeRetry:    DefaultSubscribeRetry,
		SubscribeAttempts: DefaultSubscribeAttempts,
		CooldownLinkLost:  DefaultCooldownLinkLost,
		CooldownConnect:   DefaultCooldownConnect,
		CooldownSubscribe: DefaultCooldownSubscribe,
		Rescan:            DefaultRescan,
	}
}

// Cooldown before rescan after failure of given class.
func (self *Options) Cooldown(kind types.ErrorKind) time.Duration {
	switch kind {
	case types.ErrorLinkLost, types.ErrorUnknown:
		return self.CooldownLinkLost
	case types.ErrorSubscribeFailed:
		return self.CooldownSubscribe
	}
	return self.CooldownConnect
}

// Session is the one connection lifecycle record per process.
type Session struct {
	Target     mac.Address
	State      State
	RetryCount int
	LastError  types.ErrorKind
	Generation uint64
}

func (self Session) Status() Status {
	return Status{State: self.State, Reason: self.LastError, Address: self.Target}
}

// Step is the single transition function: (session, event) -> (session, effects).
// It touches nothing but the filter, all I/O is described by returned effects.
// Events not valid for current state are ignored with no effects.
func Step(s Session, f *filter.Filter, ev Event, opt Options) (Session, []Effect) {
	if ev.Kind.Tokened() && ev.Gen != s.Generation {
		return s, stale(s, ev)
	}
	next, effs := step(s, f, ev, &opt)
	if next.State != s.State || next.LastError != s.LastError || next.Target != s.Target {
		effs = append(effs, Effect{Kind: EffectPublish, Status: next.Status()})
	}
	return next, effs
}

func step(s Session, f *filter.Filter, ev Event, opt *Options) (Session, []Effect) {
	switch ev.Kind {
	case EventStart:
		if s.State != StateIdle && s.State != StateError {
			return s, nil
		}
		f.Reset()
		s = Session{State: StateScanning, Generation: s.Generation + 1}
		return s, []Effect{{Kind: EffectStartDiscovery}}

	case EventStop:
		if s.State == StateIdle {
			return s, nil
		}
		effs := []Effect{{Kind: EffectCancelTimers}}
		if s.State == StateScanning {
			effs = append(effs, Effect{Kind: EffectStopDiscovery})
		}
		if s.State.Active() {
			effs = append(effs, Effect{Kind: EffectDisconnect, Addr: s.Target})
		}
		f.Reset()
		s = Session{State: StateIdle, Generation: s.Generation + 1}
		return s, effs

	case EventFound:
		if s.State != StateScanning || !f.Match(ev.Adv) {
			return s, nil
		}
		s.State = StateConnecting
		s.Target = ev.Adv.Address
		return s, []Effect{
			{Kind: EffectStopDiscovery},
			{Kind: EffectConnect, Addr: s.Target},
		}

	case EventScanComplete:
		if s.State != StateScanning {
			return s, nil
		}
		if kind := normalize(ev.ErrKind); kind != types.ErrorNone {
			if kind == types.ErrorPermissionDenied {
				return halt(s), []Effect{{Kind: EffectCancelTimers}}
			}
			s.LastError = kind
			return s, []Effect{schedule(s, opt.CooldownConnect, EventRescan)}
		}
		if f.AnyConnected() {
			return s, nil
		}
		return s, []Effect{schedule(s, opt.Rescan, EventRescan)}

	case EventConnected:
		if ev.Addr != s.Target || !s.State.Active() {
			// late success of abandoned attempt
			return s, []Effect{{Kind: EffectDisconnect, Addr: ev.Addr}}
		}
		if s.State != StateConnecting {
			return s, nil
		}
		f.MarkConnected(s.Target)
		s.State = StateConnected
		s.LastError = types.ErrorNone
		return s, []Effect{schedule(s, opt.Settle, EventSettled)}

	case EventConnectError:
		if s.State != StateConnecting || ev.Addr != s.Target {
			return s, nil
		}
		kind := normalize(ev.ErrKind)
		s.Generation++
		if kind == types.ErrorPermissionDenied {
			return halt(s), []Effect{{Kind: EffectCancelTimers}}
		}
		s.State = StateDisconnected
		s.Target = mac.Zero
		s.LastError = kind
		return s, []Effect{schedule(s, opt.CooldownConnect, EventRescan)}

	case EventSettled:
		if s.State != StateConnected {
			return s, nil
		}
		s.State = StateSubscribing
		s.RetryCount = 1
		return s, []Effect{{Kind: EffectSubscribe, Addr: s.Target}}

	case EventSubscribed:
		if s.State != StateSubscribing {
			return s, nil
		}
		s.State = StateStreaming
		s.RetryCount = 0
		s.LastError = types.ErrorNone
		if len(opt.StartCommand) != 0 {
			return s, []Effect{{Kind: EffectWrite, Addr: s.Target, Payload: opt.StartCommand}}
		}
		return s, nil

	case EventSubscribeFailed:
		if s.State != StateSubscribing {
			return s, nil
		}
		kind := ev.ErrKind
		if kind != types.ErrorPermissionDenied {
			kind = types.ErrorSubscribeFailed
		}
		if kind != types.ErrorPermissionDenied && s.RetryCount < opt.SubscribeAttempts {
			s.LastError = kind
			return s, []Effect{schedule(s, opt.SubscribeRetry, EventSubscribeRetry)}
		}
		effs := []Effect{{Kind: EffectDisconnect, Addr: s.Target}}
		f.ClearConnected(s.Target)
		s.Generation++
		if kind == types.ErrorPermissionDenied {
			return halt(s), append(effs, Effect{Kind: EffectCancelTimers})
		}
		s.State = StateError
		s.Target = mac.Zero
		s.RetryCount = 0
		s.LastError = kind
		return s, append(effs, schedule(s, opt.CooldownSubscribe, EventRescan))

	case EventSubscribeRetry:
		if s.State != StateSubscribing {
			return s, nil
		}
		s.RetryCount++
		return s, []Effect{{Kind: EffectSubscribe, Addr: s.Target}}

	case EventNotify:
		if s.State != StateStreaming {
			return s, nil
		}
		return s, []Effect{{Kind: EffectDeliver, Payload: ev.Payload}}

	case EventLinkLost:
		if !s.State.Active() || (!ev.Addr.IsZero() && ev.Addr != s.Target) {
			return s, nil
		}
		kind := normalize(ev.ErrKind)
		if kind == types.ErrorNone || kind == types.ErrorUnknown {
			kind = types.ErrorLinkLost
		}
		f.ClearConnected(s.Target)
		effs := []Effect{{Kind: EffectDisconnect, Addr: s.Target}}
		s.Generation++
		if kind == types.ErrorPermissionDenied {
			return halt(s), append(effs, Effect{Kind: EffectCancelTimers})
		}
		s.State = StateDisconnected
		s.Target = mac.Zero
		s.RetryCount = 0
		s.LastError = kind
		return s, append(effs, schedule(s, opt.Cooldown(kind), EventRescan))

	case EventRescan:
		switch {
		case s.State == StateScanning, s.State == StateDisconnected:
		case s.State == StateError && s.LastError != types.ErrorPermissionDenied:
		default:
			return s, nil
		}
		f.NewCycle()
		s.State = StateScanning
		return s, []Effect{{Kind: EffectStartDiscovery}}
	}
	return s, nil
}

// stale answers nothing but a connection nobody waits for.
func stale(s Session, ev Event) []Effect {
	if ev.Kind == EventConnected && (ev.Addr != s.Target || !s.State.Active()) {
		return []Effect{{Kind: EffectDisconnect, Addr: ev.Addr}}
	}
	return nil
}

// Unknown failures get the same recovery as link loss.
func normalize(kind types.ErrorKind) types.ErrorKind {
	if kind == types.ErrorUnknown {
		return types.ErrorLinkLost
	}
	return kind
}

// halt enters terminal Error, only explicit Start leaves it.
func halt(s Session) Session {
	s.State = StateError
	s.Target = mac.Zero
	s.RetryCount = 0
	s.LastError = types.ErrorPermissionDenied
	return s
}

func schedule(s Session, d time.Duration, kind EventKind) Effect {
	return Effect{Kind: EffectSchedule, Delay: d, Event: Event{Kind: kind, Gen: s.Generation}}
}
