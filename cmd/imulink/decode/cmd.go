package decode

import (
	"context"
	"fmt"
	"strings"

	"github.com/c-bata/go-prompt"
	"github.com/temoto/imulink/cmd/imulink/subcmd"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/helpers/cli"
	"github.com/temoto/imulink/internal/frame"
	"github.com/temoto/imulink/internal/state"
)

const modName = "decode"

const usage = `one notification payload in hex per line, e.g. 0000803f...
(meta)
- format NAME   switch 12 byte format: f32x6 i16x6 f32x3pair
- reset         drop pending split pair half
- help          this text
`

var Mod = subcmd.Mod{Name: modName, Usage: "decode hex payloads from prompt or stdin", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)
	s := newSession(config.FrameFormat(), config.FrameOptions())
	g.Log.Debugf("decode format=%s", s.dec.Format())
	return cli.MainLoop(modName, func(line string) {
		if out := s.exec(line); out != "" {
			fmt.Println(out)
		}
	}, newCompleter())
}

type session struct {
	opt frame.Options
	dec *frame.Decoder
	n   int
}

func newSession(format frame.Format, opt frame.Options) *session {
	return &session{opt: opt, dec: frame.NewDecoder(format, opt)}
}

// exec returns text to print for one input line.
func (self *session) exec(line string) string {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "help", "?":
		return usage
	case "reset":
		self.dec.Reset()
		return "reset"
	case "format":
		if len(fields) != 2 {
			return "error: format NAME"
		}
		f, err := frame.ParseFormat(fields[1])
		if err != nil {
			return "error: " + err.Error()
		}
		self.dec = frame.NewDecoder(f, self.opt)
		return "format=" + f.String()
	}

	b, err := helpers.ParseHex(line)
	if err != nil {
		return fmt.Sprintf("error: hex %v", err)
	}
	self.n++
	s, ok, err := self.dec.Decode(b, float64(self.n))
	switch {
	case err != nil:
		return "error: " + err.Error()
	case !ok:
		return "pending pair half"
	}
	return s.String()
}

func newCompleter() func(d prompt.Document) []prompt.Suggest {
	suggests := []prompt.Suggest{
		{Text: "help", Description: "usage"},
		{Text: "reset", Description: "drop pending split pair half"},
		{Text: "format f32x6", Description: "24 byte float frames"},
		{Text: "format i16x6", Description: "12 byte scaled int frames"},
		{Text: "format f32x3pair", Description: "12 byte float triplets, accel and gyro split"},
	}
	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterHasPrefix(suggests, d.TextBeforeCursor(), true)
	}
}
