package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/imulink/cmd/imulink/subcmd"
	"github.com/temoto/imulink/internal/state"
)

var Mod = subcmd.Mod{Name: "run", Usage: "connect, stream and record until SIGINT/SIGTERM", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	g.MustInit(ctx, config)
	g.Log.Debugf("config %s", g.Config.Redacted())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		select {
		case s := <-sigs:
			g.Log.Infof("signal=%v stopping", s)
			subcmd.SdNotify(daemon.SdNotifyStopping)
			g.Stop()
		case <-g.Alive.StopChan():
		}
	}()

	subcmd.SdNotify(daemon.SdNotifyReady)
	g.Log.Infof("run init complete target=%s format=%s", config.FilterTarget(), config.FrameFormat())
	err := g.Run(ctx)
	return errors.Annotate(err, "run")
}
