package scan

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/imulink/cmd/imulink/subcmd"
	"github.com/temoto/imulink/internal/filter"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/state"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
)

var Mod = subcmd.Mod{Name: "scan", Usage: "print advertisements and filter verdicts for one scan window", Main: Main}

// extra wait for adapter to report scan end
const completeGrace = 5 * time.Second

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.Config = config
	if err := g.InitRadio(); err != nil {
		return errors.Annotate(err, "scan")
	}
	window := config.BluetoothConfig().ScanWindow
	g.Log.Infof("scan window=%v target=%s", window, config.FilterTarget())

	p := newPrinter(g.Log.Infof, filter.New(config.FilterTarget()))
	done := make(chan error, 1)
	g.Radio.StartDiscovery(p.found, func(err error) { done <- err })
	defer g.Radio.StopDiscovery()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	var err error
	select {
	case err = <-done:
	case <-sigs:
	case <-time.After(window + completeGrace):
	}
	g.Log.Infof("scan complete devices=%d matched=%d", p.total(), p.matched)
	return errors.Annotate(err, "scan")
}

type printer struct {
	sync.Mutex
	logf    log2.FmtFunc
	filter  *filter.Filter
	seen    map[mac.Address]struct{}
	matched int
}

func newPrinter(logf log2.FmtFunc, f *filter.Filter) *printer {
	return &printer{logf: logf, filter: f, seen: make(map[mac.Address]struct{})}
}

// found prints each address once, filter is not safe for concurrent use.
func (self *printer) found(adv types.Advertisement) {
	self.Lock()
	defer self.Unlock()
	if _, ok := self.seen[adv.Address]; ok {
		return
	}
	self.seen[adv.Address] = struct{}{}
	verdict := self.filter.Explain(adv)
	if self.filter.Match(adv) {
		self.matched++
	}
	self.logf("%s %s", adv.String(), verdict)
}

func (self *printer) total() int {
	self.Lock()
	defer self.Unlock()
	return len(self.seen)
}
