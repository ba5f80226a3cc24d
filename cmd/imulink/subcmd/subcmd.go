// Support sub-commands in imulink application.
// It's simple but fine so far.
package subcmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/state"
)

type Mod struct {
	Name  string
	Usage string
	Main  func(context.Context, *state.Config) error
}

func Parse(command string, modules []Mod) (*Mod, error) {
	if command == "" {
		return nil, fmt.Errorf("empty command")
	}

	var found *Mod
	for i := range modules {
		m := &modules[i]
		if m.Name == "" {
			panic(fmt.Sprintf("code error Name='' module=%#v", m))
		}
		if command == m.Name {
			found = m
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("unknown command='%s' (expected %s)", command, names(modules))
	}
	return found, nil
}

// Usage lists modules one per line with their help text.
func Usage(w io.Writer, modules []Mod) {
	width := 0
	for _, m := range modules {
		if len(m.Name) > width {
			width = len(m.Name)
		}
	}
	for _, m := range modules {
		fmt.Fprintf(w, "  %-*s  %s\n", width, m.Name, m.Usage)
	}
}

func names(modules []Mod) string {
	ss := make([]string, len(modules))
	for i, m := range modules {
		ss[i] = m.Name
	}
	return strings.Join(ss, "|")
}

func SdNotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
