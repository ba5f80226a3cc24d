package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/types"
)

var (
	addrPico  = mac.MustParse("28:CD:C1:14:B8:3C")
	addrOther = mac.MustParse("11:22:33:44:55:66")
)

func TestMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		target Target
		adv    types.Advertisement
		expect bool
	}{
		{"mac-equal", Target{MAC: addrPico}, types.Advertisement{Address: mac.MustParse("28cdc114b83c")}, true},
		{"mac-ignores-name", Target{MAC: addrPico, Names: []string{"PICO"}}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, false},
		{"mac-name-irrelevant", Target{MAC: addrPico, Names: []string{"PICO"}}, types.Advertisement{Address: addrPico, Name: "whatever"}, true},
		{"name-substring", Target{Names: []string{"pico"}}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, true},
		{"name-second", Target{Names: []string{"nano", "imu"}}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, true},
		{"name-miss", Target{Names: []string{"nano"}}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, false},
		{"name-empty", Target{Names: []string{"pico"}}, types.Advertisement{Address: addrOther}, false},
		{"zero-address", Target{Names: []string{"pico"}}, types.Advertisement{Name: "PICO-IMU"}, false},
		{"no-criteria", Target{}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, false},
		{"blank-names", Target{Names: []string{" ", ""}}, types.Advertisement{Address: addrOther, Name: "PICO-IMU"}, false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			f := New(c.target)
			assert.Equal(t, c.expect, f.Match(c.adv))
		})
	}
}

func TestSeenConnected(t *testing.T) {
	t.Parallel()

	f := New(Target{Names: []string{"PICO-IMU"}})
	adv := types.Advertisement{Address: addrPico, Name: "PICO-IMU"}

	assert.True(t, f.Match(adv))
	assert.False(t, f.Match(adv), "seen in this cycle")
	assert.Equal(t, "seen this cycle", f.Explain(adv))

	f.NewCycle()
	assert.Equal(t, "match", f.Explain(adv))
	f.MarkConnected(addrPico)
	assert.True(t, f.AnyConnected())
	assert.False(t, f.Match(adv), "connected")
	assert.Equal(t, "connected", f.Explain(adv))

	f.ClearConnected(addrPico)
	assert.False(t, f.AnyConnected())
	assert.True(t, f.Match(adv))

	f.MarkConnected(addrPico)
	f.Reset()
	assert.False(t, f.AnyConnected())
	assert.True(t, f.Match(adv))
}

func TestExplain(t *testing.T) {
	t.Parallel()

	f := New(Target{MAC: addrPico})
	assert.Equal(t, "mac mismatch", f.Explain(types.Advertisement{Address: addrOther}))
	assert.Equal(t, "no address", f.Explain(types.Advertisement{}))
	g := New(Target{Names: []string{"pico"}})
	assert.Equal(t, "name mismatch", g.Explain(types.Advertisement{Address: addrOther, Name: "x"}))
	assert.Equal(t, "names=pico", g.Target().String())
	assert.Equal(t, "mac=28:CD:C1:14:B8:3C", f.Target().String())
}
