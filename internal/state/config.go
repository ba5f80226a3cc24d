package state

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/imulink/helpers"
	"github.com/temoto/imulink/internal/filter"
	"github.com/temoto/imulink/internal/frame"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/radio"
	"github.com/temoto/imulink/internal/recorder"
	"github.com/temoto/imulink/internal/tele"
	"github.com/temoto/imulink/log2"
	"tinygo.org/x/bluetooth"
)

var DefaultTargetNames = []string{"PICO-IMU"}

const (
	DefaultRecordDir    = "./data"
	DefaultRecordPrefix = "imu"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	LogDebug bool `hcl:"log_debug"`

	Target struct {
		MAC   string   `hcl:"mac"`
		Names []string `hcl:"names"`
	} `hcl:"target"`

	GATT struct {
		Service      string `hcl:"service"`
		Write        string `hcl:"write"`
		Notify       string `hcl:"notify"`
		StartCommand string `hcl:"start_command"` // hex
	} `hcl:"gatt"`

	Link struct { //nolint:maligned
		Adapter              string  `hcl:"adapter"`
		SettleSec            float64 `hcl:"settle_sec"`
		SubscribeRetrySec    float64 `hcl:"subscribe_retry_sec"`
		SubscribeAttempts    int     `hcl:"subscribe_attempts"`
		CooldownLinkLostSec  float64 `hcl:"cooldown_link_lost_sec"`
		CooldownConnectSec   float64 `hcl:"cooldown_connect_sec"`
		CooldownSubscribeSec float64 `hcl:"cooldown_subscribe_sec"`
		RescanSec            float64 `hcl:"rescan_sec"`
		ScanWindowSec        float64 `hcl:"scan_window_sec"`
	} `hcl:"link"`

	Decode struct {
		Format         string  `hcl:"format"`
		AccelThreshold float64 `hcl:"accel_threshold"`
	} `hcl:"decode"`

	Record struct {
		Dir              string  `hcl:"dir"`
		Prefix           string  `hcl:"prefix"`
		FlushIntervalSec float64 `hcl:"flush_interval_sec"`
		MaxRows          int     `hcl:"max_rows"`
		Sqlite           string  `hcl:"sqlite"`
	} `hcl:"record"`

	Influx struct {
		Enabled bool   `hcl:"enable"`
		URL     string `hcl:"url"`
		Token   string `hcl:"token"` // secret
		Org     string `hcl:"org"`
		Bucket  string `hcl:"bucket"`
	} `hcl:"influx"`

	Tele tele.Config `hcl:"tele"`

	Status struct {
		Listen string `hcl:"listen"`
	} `hcl:"status"`

	Persist struct {
		Root string `hcl:"root"`
	} `hcl:"persist"`

	// filled by Validate
	target       filter.Target
	format       frame.Format
	startCommand []byte

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		*errs = append(*errs, errors.Errorf("config duplicate source=%s", source.Name))
		return
	}
	log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

// Validate parses textual fields and fills defaults. Must be called before accessors.
func (c *Config) Validate() error {
	errs := make([]error, 0, 4)

	c.target = filter.Target{}
	if s := strings.TrimSpace(c.Target.MAC); s != "" {
		m, err := mac.Parse(s)
		switch {
		case err != nil:
			errs = append(errs, errors.Annotate(err, "config target.mac"))
		case m.IsZero():
			errs = append(errs, errors.NotValidf("config target.mac=%s zero address", s))
		}
		c.target.MAC = m
	}
	for _, n := range c.Target.Names {
		if n = strings.TrimSpace(n); n != "" {
			c.target.Names = append(c.target.Names, n)
		}
	}
	if c.target.MAC.IsZero() && len(c.target.Names) == 0 {
		c.target.Names = append([]string(nil), DefaultTargetNames...)
	}

	if c.GATT.Service == "" {
		c.GATT.Service = radio.NUSService
	}
	if c.GATT.Write == "" {
		c.GATT.Write = radio.NUSRX
	}
	if c.GATT.Notify == "" {
		c.GATT.Notify = radio.NUSTX
	}
	for _, u := range []struct{ name, value string }{
		{"service", c.GATT.Service}, {"write", c.GATT.Write}, {"notify", c.GATT.Notify},
	} {
		if _, err := bluetooth.ParseUUID(u.value); err != nil {
			errs = append(errs, errors.NotValidf("config gatt.%s=%s", u.name, u.value))
		}
	}
	c.startCommand = nil
	if c.GATT.StartCommand != "" {
		b, err := helpers.ParseHex(c.GATT.StartCommand)
		if err != nil {
			errs = append(errs, errors.Annotate(err, "config gatt.start_command"))
		}
		c.startCommand = b
	}

	if c.Decode.Format == "" {
		c.format = frame.F32x6
	} else {
		f, err := frame.ParseFormat(c.Decode.Format)
		if err != nil {
			errs = append(errs, errors.Annotate(err, "config decode.format"))
		}
		c.format = f
	}
	if c.Link.SubscribeAttempts < 0 {
		errs = append(errs, errors.NotValidf("config link.subscribe_attempts=%d", c.Link.SubscribeAttempts))
	}
	if c.Record.MaxRows < 0 {
		errs = append(errs, errors.NotValidf("config record.max_rows=%d", c.Record.MaxRows))
	}
	if c.Record.Dir == "" {
		c.Record.Dir = DefaultRecordDir
	}
	if c.Record.Prefix == "" {
		c.Record.Prefix = DefaultRecordPrefix
	}
	if c.Influx.Enabled && c.Influx.URL == "" {
		errs = append(errs, errors.NotValidf("config influx enabled with url=empty"))
	}
	if c.Tele.Enabled && c.Tele.MqttBroker == "" {
		errs = append(errs, errors.NotValidf("config tele enabled with mqtt_broker=empty"))
	}
	if c.Tele.Enabled && c.Tele.PersistPath == "" && c.Persist.Root != "" {
		c.Tele.PersistPath = filepath.Join(c.Persist.Root, "tele")
	}
	return helpers.FoldErrors(errs)
}

// Redacted is config text for logs, secrets (influx token, mqtt password) left out.
func (c *Config) Redacted() string {
	return fmt.Sprintf("target=%+v gatt=%+v link=%+v decode=%+v record=%+v influx={enable=%t url=%s org=%s bucket=%s token=%s} tele={enable=%t broker=%s client_id=%s password=%s persist_path=%s} status=%+v persist=%+v",
		c.Target, c.GATT, c.Link, c.Decode, c.Record,
		c.Influx.Enabled, c.Influx.URL, c.Influx.Org, c.Influx.Bucket, redact(c.Influx.Token),
		c.Tele.Enabled, c.Tele.MqttBroker, c.Tele.ClientID, redact(c.Tele.MqttPassword), c.Tele.PersistPath,
		c.Status, c.Persist)
}

func redact(secret string) string {
	if secret == "" {
		return "empty"
	}
	return "***"
}

func (c *Config) FilterTarget() filter.Target { return c.target }
func (c *Config) FrameFormat() frame.Format    { return c.format }

func (c *Config) FrameOptions() frame.Options {
	return frame.Options{AccelThreshold: float32(c.Decode.AccelThreshold)}
}

func (c *Config) LinkOptions() link.Options {
	o := link.Options{
		Settle:            helpers.SecondsDefault(c.Link.SettleSec, link.DefaultSettle),
		SubscribeRetry:    helpers.SecondsDefault(c.Link.SubscribeRetrySec, link.DefaultSubscribeRetry),
		SubscribeAttempts: c.Link.SubscribeAttempts,
		CooldownLinkLost:  helpers.SecondsDefault(c.Link.CooldownLinkLostSec, link.DefaultCooldownLinkLost),
		CooldownConnect:   helpers.SecondsDefault(c.Link.CooldownConnectSec, link.DefaultCooldownConnect),
		CooldownSubscribe: helpers.SecondsDefault(c.Link.CooldownSubscribeSec, link.DefaultCooldownSubscribe),
		Rescan:            helpers.SecondsDefault(c.Link.RescanSec, link.DefaultRescan),
		StartCommand:      c.startCommand,
	}
	if o.SubscribeAttempts == 0 {
		o.SubscribeAttempts = link.DefaultSubscribeAttempts
	}
	return o
}

func (c *Config) LinkGATT() link.GATT {
	return link.GATT{Service: c.GATT.Service, Notify: c.GATT.Notify, Write: c.GATT.Write}
}

func (c *Config) LinkConfig() link.Config {
	return link.Config{
		Options: c.LinkOptions(),
		Target:  c.FilterTarget(),
		GATT:    c.LinkGATT(),
		Format:  c.FrameFormat(),
		Frame:   c.FrameOptions(),
	}
}

func (c *Config) BluetoothConfig() radio.BluetoothConfig {
	return radio.BluetoothConfig{
		Adapter:    c.Link.Adapter,
		ScanWindow: helpers.SecondsDefault(c.Link.ScanWindowSec, radio.DefaultScanWindow),
	}
}

func (c *Config) RecorderConfig() recorder.Config {
	return recorder.Config{
		Interval: helpers.SecondsDefault(c.Record.FlushIntervalSec, recorder.DefaultInterval),
		MaxRows:  c.Record.MaxRows,
	}
}

func (c *Config) InfluxConfig() recorder.InfluxConfig {
	return recorder.InfluxConfig{
		URL:    c.Influx.URL,
		Token:  c.Influx.Token,
		Org:    c.Influx.Org,
		Bucket: c.Influx.Bucket,
		Device: c.target.String(),
	}
}

// SessionPath is CSV file path for session started at t.
func (c *Config) SessionPath(t time.Time) string {
	return recorder.SessionPath(c.Record.Dir, c.Record.Prefix, t)
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if len(errs) == 0 {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
