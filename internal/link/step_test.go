package link

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/imulink/internal/filter"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

var (
	testAddr  = mac.MustParse("28:CD:C1:14:B8:3C")
	otherAddr = mac.MustParse("AA:BB:CC:DD:EE:FF")
)

func effectKinds(effs []Effect) []EffectKind {
	ks := make([]EffectKind, len(effs))
	for i, e := range effs {
		ks[i] = e.Kind
	}
	return ks
}

func findEffect(effs []Effect, k EffectKind) (Effect, bool) {
	for _, e := range effs {
		if e.Kind == k {
			return e, true
		}
	}
	return Effect{}, false
}

type stepper struct {
	t   testing.TB
	s   Session
	f   *filter.Filter
	opt Options
}

func newStepper(t testing.TB) *stepper {
	return &stepper{t: t, f: filter.New(filter.Target{Names: []string{"wt901"}}), opt: DefaultOptions()}
}

// step stamps radio results without explicit token with current generation.
func (self *stepper) step(ev Event) []Effect {
	if ev.Kind.RadioResult() && ev.Gen == 0 {
		ev.Gen = self.s.Generation
	}
	var effs []Effect
	self.s, effs = Step(self.s, self.f, ev, self.opt)
	return effs
}

// fire delivers scheduled event of given kind from effects, failing if none.
func (self *stepper) fire(effs []Effect, kind EventKind) []Effect {
	self.t.Helper()
	for _, e := range effs {
		if e.Kind == EffectSchedule && e.Event.Kind == kind {
			return self.step(e.Event)
		}
	}
	require.FailNowf(self.t, "no scheduled event", "want=%s effects=%v", kind, effs)
	return nil
}

func (self *stepper) streaming() {
	self.t.Helper()
	self.step(Event{Kind: EventStart})
	self.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901BLE68"}})
	effs := self.step(Event{Kind: EventConnected, Addr: testAddr})
	self.fire(effs, EventSettled)
	self.step(Event{Kind: EventSubscribed})
	require.Equal(self.t, StateStreaming, self.s.State)
}

func TestStepHappyPath(t *testing.T) {
	t.Parallel()
	st := newStepper(t)

	effs := st.step(Event{Kind: EventStart})
	assert.Equal(t, StateScanning, st.s.State)
	assert.Equal(t, []EffectKind{EffectStartDiscovery, EffectPublish}, effectKinds(effs))

	effs = st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: otherAddr, Name: "phone"}})
	assert.Empty(t, effs)

	effs = st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901BLE68"}})
	assert.Equal(t, StateConnecting, st.s.State)
	assert.Equal(t, testAddr, st.s.Target)
	assert.Equal(t, []EffectKind{EffectStopDiscovery, EffectConnect, EffectPublish}, effectKinds(effs))

	effs = st.step(Event{Kind: EventConnected, Addr: testAddr})
	assert.Equal(t, StateConnected, st.s.State)
	e, ok := findEffect(effs, EffectSchedule)
	require.True(t, ok)
	assert.Equal(t, DefaultSettle, e.Delay)

	effs = st.fire(effs, EventSettled)
	assert.Equal(t, StateSubscribing, st.s.State)
	assert.Equal(t, 1, st.s.RetryCount)
	assert.Equal(t, []EffectKind{EffectSubscribe, EffectPublish}, effectKinds(effs))

	effs = st.step(Event{Kind: EventSubscribed})
	assert.Equal(t, StateStreaming, st.s.State)
	assert.Equal(t, []EffectKind{EffectPublish}, effectKinds(effs))

	effs = st.step(Event{Kind: EventNotify, Payload: []byte{1, 2, 3}})
	assert.Equal(t, []Effect{{Kind: EffectDeliver, Payload: []byte{1, 2, 3}}}, effs)
}

func TestStepSingleSession(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.step(Event{Kind: EventStart})
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	// second match while connecting is ignored
	effs := st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: otherAddr, Name: "WT901 spare"}})
	assert.Empty(t, effs)
	assert.Equal(t, testAddr, st.s.Target)

	// late success from unrelated connect is torn down
	effs = st.step(Event{Kind: EventConnected, Addr: otherAddr})
	assert.Equal(t, []Effect{{Kind: EffectDisconnect, Addr: otherAddr}}, effs)
	assert.Equal(t, StateConnecting, st.s.State)
}

func TestStepStaleTimer(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.step(Event{Kind: EventStart})
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	settle := st.step(Event{Kind: EventConnected, Addr: testAddr})

	effs := st.step(Event{Kind: EventStop})
	assert.Equal(t, StateIdle, st.s.State)
	assert.Equal(t, []EffectKind{EffectCancelTimers, EffectDisconnect, EffectPublish}, effectKinds(effs))

	// timer raced with cancel
	before := st.s
	effs = st.fire(settle, EventSettled)
	assert.Empty(t, effs)
	assert.Equal(t, before, st.s)

	// and after restart, still stale
	st.step(Event{Kind: EventStart})
	effs = st.fire(settle, EventSettled)
	assert.Empty(t, effs)
	assert.Equal(t, StateScanning, st.s.State)
}

func TestStepSubscribeAttempts(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.step(Event{Kind: EventStart})
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	effs := st.step(Event{Kind: EventConnected, Addr: testAddr})
	st.fire(effs, EventSettled)

	effs = st.step(Event{Kind: EventSubscribeFailed, ErrKind: types.ErrorUnknown})
	assert.Equal(t, StateSubscribing, st.s.State)
	e, ok := findEffect(effs, EffectSchedule)
	require.True(t, ok)
	assert.Equal(t, DefaultSubscribeRetry, e.Delay)
	assert.Equal(t, EventSubscribeRetry, e.Event.Kind)

	effs = st.fire(effs, EventSubscribeRetry)
	assert.Equal(t, 2, st.s.RetryCount)
	assert.Equal(t, []EffectKind{EffectSubscribe}, effectKinds(effs))

	effs = st.step(Event{Kind: EventSubscribeFailed, ErrKind: types.ErrorUnknown})
	assert.Equal(t, StateError, st.s.State)
	assert.Equal(t, types.ErrorSubscribeFailed, st.s.LastError)
	assert.Equal(t, []EffectKind{EffectDisconnect, EffectSchedule, EffectPublish}, effectKinds(effs))
	e, _ = findEffect(effs, EffectSchedule)
	assert.Equal(t, DefaultCooldownSubscribe, e.Delay)
	assert.Equal(t, EventRescan, e.Event.Kind)

	effs = st.fire(effs, EventRescan)
	assert.Equal(t, StateScanning, st.s.State)
	assert.Equal(t, []EffectKind{EffectStartDiscovery, EffectPublish}, effectKinds(effs))
}

func TestStepPermissionDenied(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		drive func(st *stepper) []Effect
	}{
		{"scan", func(st *stepper) []Effect {
			st.step(Event{Kind: EventStart})
			return st.step(Event{Kind: EventScanComplete, ErrKind: types.ErrorPermissionDenied})
		}},
		{"connect", func(st *stepper) []Effect {
			st.step(Event{Kind: EventStart})
			st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
			return st.step(Event{Kind: EventConnectError, Addr: testAddr, ErrKind: types.ErrorPermissionDenied})
		}},
		{"subscribe", func(st *stepper) []Effect {
			st.step(Event{Kind: EventStart})
			st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
			effs := st.step(Event{Kind: EventConnected, Addr: testAddr})
			st.fire(effs, EventSettled)
			return st.step(Event{Kind: EventSubscribeFailed, ErrKind: types.ErrorPermissionDenied})
		}},
		{"link", func(st *stepper) []Effect {
			st.streaming()
			return st.step(Event{Kind: EventLinkLost, Addr: testAddr, ErrKind: types.ErrorPermissionDenied})
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			st := newStepper(t)
			effs := c.drive(st)
			assert.Equal(t, StateError, st.s.State)
			assert.True(t, st.s.Status().Halted())
			_, scheduled := findEffect(effs, EffectSchedule)
			assert.False(t, scheduled, "halt must not schedule recovery")

			// Rescan cannot leave halted state, Start can
			assert.Empty(t, st.step(Event{Kind: EventRescan, Gen: st.s.Generation}))
			effs = st.step(Event{Kind: EventStart})
			assert.Equal(t, StateScanning, st.s.State)
			assert.Equal(t, types.ErrorNone, st.s.LastError)
			assert.Equal(t, []EffectKind{EffectStartDiscovery, EffectPublish}, effectKinds(effs))
		})
	}
}

func TestStepScanComplete(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		kind      types.ErrorKind
		wantDelay int64
		wantError types.ErrorKind
	}{
		{"empty", types.ErrorNone, int64(DefaultRescan), types.ErrorNone},
		{"adapter-busy", types.ErrorUnknown, int64(DefaultCooldownConnect), types.ErrorLinkLost},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			st := newStepper(t)
			st.step(Event{Kind: EventStart})
			effs := st.step(Event{Kind: EventScanComplete, ErrKind: c.kind})
			assert.Equal(t, StateScanning, st.s.State)
			assert.Equal(t, c.wantError, st.s.LastError)
			e, ok := findEffect(effs, EffectSchedule)
			require.True(t, ok)
			assert.Equal(t, c.wantDelay, int64(e.Delay))
			effs = st.fire(effs, EventRescan)
			assert.Equal(t, []EffectKind{EffectStartDiscovery}, effectKinds(effs))
		})
	}
}

func TestStepLinkLost(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.streaming()

	// other device loss is not ours
	assert.Empty(t, st.step(Event{Kind: EventLinkLost, Addr: otherAddr}))

	gen := st.s.Generation
	effs := st.step(Event{Kind: EventLinkLost, Addr: testAddr, ErrKind: types.ErrorUnknown})
	assert.Equal(t, StateDisconnected, st.s.State)
	assert.Equal(t, types.ErrorLinkLost, st.s.LastError)
	assert.Equal(t, gen+1, st.s.Generation)
	assert.True(t, st.s.Target.IsZero())
	assert.False(t, st.f.IsConnected(testAddr))
	e, ok := findEffect(effs, EffectSchedule)
	require.True(t, ok)
	assert.Equal(t, DefaultCooldownLinkLost, e.Delay)

	// notifications after loss are dropped
	assert.Empty(t, st.step(Event{Kind: EventNotify, Payload: []byte{1}}))

	st.fire(effs, EventRescan)
	assert.Equal(t, StateScanning, st.s.State)
	// same device is eligible again on new cycle
	effs = st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	assert.Equal(t, StateConnecting, st.s.State)
	assert.Equal(t, []EffectKind{EffectStopDiscovery, EffectConnect, EffectPublish}, effectKinds(effs))
}

func TestStepConnectError(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.step(Event{Kind: EventStart})
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	effs := st.step(Event{Kind: EventConnectError, Addr: testAddr, ErrKind: types.ErrorLinkLost})
	assert.Equal(t, StateDisconnected, st.s.State)
	e, ok := findEffect(effs, EffectSchedule)
	require.True(t, ok)
	assert.Equal(t, DefaultCooldownConnect, e.Delay)

	// late success after failure must be torn down
	effs = st.step(Event{Kind: EventConnected, Addr: testAddr, Gen: st.s.Generation - 1})
	assert.Equal(t, []Effect{{Kind: EffectDisconnect, Addr: testAddr}}, effs)
	assert.Equal(t, StateDisconnected, st.s.State)
}

func TestStepStaleRadioResult(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.streaming()
	old := st.s.Generation
	st.step(Event{Kind: EventLinkLost, Addr: testAddr})
	effs := st.step(Event{Kind: EventRescan, Gen: st.s.Generation})
	require.Equal(t, []EffectKind{EffectStartDiscovery, EffectPublish}, effectKinds(effs))
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	effs = st.step(Event{Kind: EventConnected, Addr: testAddr})
	st.fire(effs, EventSettled)
	require.Equal(t, StateSubscribing, st.s.State)

	cases := []Event{
		{Kind: EventConnected, Addr: testAddr, Gen: old},
		{Kind: EventConnectError, Addr: testAddr, ErrKind: types.ErrorLinkLost, Gen: old},
		{Kind: EventSubscribed, Gen: old},
		{Kind: EventSubscribeFailed, ErrKind: types.ErrorSubscribeFailed, Gen: old},
		{Kind: EventNotify, Payload: []byte{1}, Gen: old},
	}
	for _, ev := range cases {
		before := st.s
		assert.Empty(t, st.step(ev), ev.String())
		assert.Equal(t, before, st.s, ev.String())
	}

	// own answer still counts
	st.step(Event{Kind: EventSubscribed})
	assert.Equal(t, StateStreaming, st.s.State)
}

func TestStepNotifyOutsideStreaming(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	for _, ev := range []Event{
		{Kind: EventStart},
		{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}},
		{Kind: EventConnected, Addr: testAddr},
	} {
		st.step(ev)
		assert.Empty(t, st.step(Event{Kind: EventNotify, Payload: []byte{1, 2}}), st.s.State.String())
	}
}

func TestStepStartCommand(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	st.opt.StartCommand = []byte{0xff, 0xaa, 0x03, 0x08, 0x00}
	st.step(Event{Kind: EventStart})
	st.step(Event{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}})
	effs := st.step(Event{Kind: EventConnected, Addr: testAddr})
	st.fire(effs, EventSettled)
	effs = st.step(Event{Kind: EventSubscribed})
	e, ok := findEffect(effs, EffectWrite)
	require.True(t, ok)
	assert.Equal(t, testAddr, e.Addr)
	assert.Equal(t, st.opt.StartCommand, e.Payload)
}

func TestStepIgnoresInvalid(t *testing.T) {
	t.Parallel()
	st := newStepper(t)
	cases := []Event{
		{Kind: EventStop},
		{Kind: EventFound, Adv: types.Advertisement{Address: testAddr, Name: "WT901"}},
		{Kind: EventScanComplete},
		{Kind: EventSubscribed},
		{Kind: EventSubscribeFailed},
		{Kind: EventLinkLost, Addr: testAddr},
		{Kind: EventInvalid},
	}
	for _, ev := range cases {
		effs := st.step(ev)
		assert.Empty(t, effs, ev.String())
		assert.Equal(t, StateIdle, st.s.State)
	}
}
