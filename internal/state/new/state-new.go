// Sorry, workaround to import cycles.
package state_new

import (
	"context"
	"os"
	"testing"

	"github.com/temoto/alive/v2"
	"github.com/temoto/imulink/internal/radio"
	"github.com/temoto/imulink/internal/state"
	"github.com/temoto/imulink/internal/tele"
	"github.com/temoto/imulink/log2"
)

func NewContext(log *log2.Log, t *tele.Tele) (context.Context, *state.Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &state.Global{
		Alive: alive.NewAlive(),
		Log:   log,
		Tele:  t,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, state.ContextKey, g)

	return ctx, g
}

// NewTestContext inits Global from inline config over given radio, usually *radio.Mock.
func NewTestContext(t testing.TB, r radio.Radio, confString string) (context.Context, *state.Global) {
	fs := state.NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	var log *log2.Log
	if os.Getenv("imulink_test_log_stderr") == "1" {
		log = log2.NewStderr(log2.LDebug) // useful with panics
	} else {
		log = log2.NewTest(t, log2.LDebug)
	}
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log, tele.New())
	g.BuildVersion = "test"
	g.Radio = r
	g.MustInit(ctx, state.MustReadConfig(log, fs, "test-inline"))
	return ctx, g
}
