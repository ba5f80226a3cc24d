package state

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/orient"
	"github.com/temoto/imulink/internal/radio"
	"github.com/temoto/imulink/internal/recorder"
	"github.com/temoto/imulink/internal/state/persist"
	"github.com/temoto/imulink/internal/status"
	"github.com/temoto/imulink/internal/tele"
	"github.com/temoto/imulink/log2"
)

// Global wires link machine, recorder, tele and status board into one pipeline.
type Global struct {
	Alive        *alive.Alive
	BuildVersion string
	Config       *Config
	Log          *log2.Log
	Tele         *tele.Tele
	Radio        radio.Radio // set before Init to bypass config
	Emulate      bool        // synthetic peripheral instead of host adapter

	Link     *link.Machine
	Recorder *recorder.Buffer
	Board    *status.Board
	Orient   *orient.Estimator
	Persist  persist.Persist
	CSVPath  string

	radioOnce once
	stat      link.Stat // persist target

	_copy_guard sync.Mutex //nolint:unused
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg
	if g.Alive == nil {
		g.Alive = alive.NewAlive()
	}
	if cfg.LogDebug {
		g.Log.SetLevel(log2.LDebug)
	}
	g.Log.Infof("build version=%s", g.BuildVersion)

	// Since tele is remote error reporting mechanism, it must be inited before anything else
	if g.Tele == nil {
		g.Tele = tele.New()
	}
	// Tele.Init gets g.Log clone before SetErrorFunc, so Tele.Log.Error doesn't recurse on itself
	if err := g.Tele.Init(ctx, g.Log.Clone(log2.LInfo), cfg.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}
	if g.Tele.Enabled() {
		g.Log.SetErrorFunc(g.Tele.Error)
	}

	if err := g.InitRadio(); err != nil {
		return errors.Annotate(err, "radio init")
	}
	g.Link = link.New(g.Log, g.Radio, cfg.LinkConfig())
	g.Orient = orient.New(orient.DefaultAlpha)
	g.Board = status.NewBoard(g.Log, g.Orient, g.Link.Stat)

	if err := g.initRecorder(ctx); err != nil {
		return errors.Annotate(err, "recorder init")
	}
	if err := g.initPersist(); err != nil {
		return err
	}

	g.Link.OnSample(g.Recorder.Append)
	g.Link.OnSample(g.Board.SetSample)
	g.Link.OnStatus(g.Board.SetStatus)
	g.Link.OnStatus(g.Tele.State)
	g.Tele.OnCommand(g.onCommand)
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Fatal(err)
	}
}

func (g *Global) initRecorder(ctx context.Context) error {
	sinks := make([]recorder.Sink, 0, 4)
	fail := func(err error) error {
		fs := make([]func() error, len(sinks))
		for i, s := range sinks {
			fs[i] = s.Close
		}
		if cerr := helpers.CloseAll(fs...); cerr != nil {
			g.Log.Errorf("recorder init cleanup err=%v", cerr)
		}
		return err
	}

	g.CSVPath = g.Config.SessionPath(time.Now())
	csv, err := recorder.NewCSV(g.CSVPath)
	if err != nil {
		return fail(err)
	}
	sinks = append(sinks, csv)
	g.Log.Infof("recording to %s", g.CSVPath)

	if path := g.Config.Record.Sqlite; path != "" {
		db, err := recorder.NewSqlite(path, g.Config.FilterTarget().String())
		if err != nil {
			return fail(err)
		}
		sinks = append(sinks, db)
	}
	if g.Config.Influx.Enabled {
		// network issue is not a reason to stop local recording
		ix, err := recorder.NewInflux(ctx, g.Log, g.Config.InfluxConfig())
		if err != nil {
			g.Error(err, "influx sink disabled")
		} else {
			sinks = append(sinks, ix)
		}
	}
	if g.Tele.Enabled() {
		sinks = append(sinks, g.Tele)
	}
	g.Recorder = recorder.NewBuffer(g.Log, g.Config.RecorderConfig(), sinks...)
	return nil
}

func (g *Global) initPersist() error {
	root := g.Config.Persist.Root
	err := g.Persist.Init("link", &g.stat, root, root != "", g.Log)
	if err == nil {
		err = g.Persist.Load()
	}
	if err != nil {
		return errors.Annotate(err, "initPersist")
	}
	if g.Persist.Enabled() {
		g.Log.Debugf("restored link stat %s", g.stat.String())
	}
	g.Link.RestoreStat(g.stat)
	return nil
}

func (g *Global) onCommand(ctx context.Context, task tele.Command_Task) error {
	switch task {
	case tele.Command_REPORT:
		return g.Tele.Report(g.Link.Stat())
	case tele.Command_FLUSH:
		_, err := g.Recorder.Flush()
		return err
	}
	return errors.NotSupportedf("command task=%s", task.String())
}

// Run streams until ctx is done or Stop(), then flushes recorder and stores counters.
func (g *Global) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g.spawn(func() { g.Link.Run(ctx) })
	g.spawn(func() { g.Recorder.Run(ctx) })
	if listen := g.Config.Status.Listen; listen != "" {
		g.spawn(func() {
			if err := g.Board.Serve(ctx, listen); err != nil {
				g.Error(err)
				g.Stop()
			}
		})
	}
	g.Link.Start()

	select {
	case <-ctx.Done():
	case <-g.Alive.StopChan():
	}
	cancel()
	g.Alive.Stop()
	g.Alive.Wait()
	return g.shutdown()
}

func (g *Global) spawn(f func()) {
	if !g.Alive.Add(1) {
		return
	}
	go func() {
		defer g.Alive.Done()
		f()
	}()
}

func (g *Global) shutdown() error {
	errs := make([]error, 0, 3)
	// recorder closes tele as one of sinks, Tele.Close is idempotent
	if err := g.Recorder.Close(); err != nil {
		errs = append(errs, errors.Annotate(err, "recorder close"))
	}
	g.stat = g.Link.Stat()
	if err := g.Persist.Store(); err != nil {
		errs = append(errs, err)
	}
	if err := g.Tele.Close(); err != nil {
		errs = append(errs, errors.Annotate(err, "tele close"))
	}
	g.Log.Infof("shutdown rows=%d %s", g.Recorder.Rows(), g.stat.String())
	return helpers.FoldErrors(errs)
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Error(err)
	}
}

func (g *Global) Fatal(err error, args ...interface{}) {
	if err != nil {
		g.Error(err, args...)
		g.StopWait(5 * time.Second)
		g.Log.Fatal(errors.ErrorStack(err))
		os.Exit(1)
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}

func (g *Global) StopWait(timeout time.Duration) bool {
	g.Alive.Stop()
	select {
	case <-g.Alive.WaitChan():
		return true
	case <-time.After(timeout):
		return false
	}
}
