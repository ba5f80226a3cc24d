package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/imulink/cmd/imulink/decode"
	"github.com/temoto/imulink/cmd/imulink/run"
	"github.com/temoto/imulink/cmd/imulink/scan"
	"github.com/temoto/imulink/cmd/imulink/subcmd"
	"github.com/temoto/imulink/internal/state"
	state_new "github.com/temoto/imulink/internal/state/new"
	"github.com/temoto/imulink/internal/tele"
	"github.com/temoto/imulink/log2"
)

// set by -ldflags "-X main.BuildVersion=..."
var BuildVersion string = "unknown"

var modules = []subcmd.Mod{
	run.Mod,
	scan.Mod,
	decode.Mod,
}

func main() {
	log := log2.NewStderr(log2.LDebug)
	log.SetFlags(log2.LInteractiveFlags)

	flagConfig := flag.String("config", "imulink.hcl", "config file, includes are relative to it")
	flagEmulate := flag.Bool("emulate", false, "synthetic peripheral instead of bluetooth adapter")
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintf(w, "usage: %s [flags] command\n\ncommands:\n", os.Args[0])
		subcmd.Usage(w, modules)
		fmt.Fprintf(w, "\nflags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	mod, err := subcmd.Parse(flag.Arg(0), modules)
	if err != nil {
		flag.Usage()
		log.Fatal(err)
	}

	if subcmd.SdNotify("start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	}
	log.Debugf("imulink version=%s command=%s", BuildVersion, mod.Name)

	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	if !config.LogDebug {
		log.SetLevel(log2.LInfo)
	}

	ctx, g := state_new.NewContext(log, tele.New())
	g.BuildVersion = BuildVersion
	g.Emulate = *flagEmulate

	if err := mod.Main(ctx, config); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	log.Debugf("bye")
}
