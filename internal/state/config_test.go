package state

import (
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/imulink/internal/frame"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/mac"
	"github.com/temoto/imulink/internal/radio"
	"github.com/temoto/imulink/internal/recorder"
	"github.com/temoto/imulink/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, *Config)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, c *Config) {
			assert.Equal(t, DefaultTargetNames, c.FilterTarget().Names)
			assert.True(t, c.FilterTarget().MAC.IsZero())
			assert.Equal(t, frame.F32x6, c.FrameFormat())
			assert.Equal(t, link.DefaultOptions(), c.LinkOptions())
			assert.Equal(t, radio.NUSService, c.LinkGATT().Service)
			assert.Equal(t, radio.NUSTX, c.LinkGATT().Notify)
			assert.Equal(t, recorder.DefaultInterval, c.RecorderConfig().Interval)
			assert.Equal(t, radio.DefaultScanWindow, c.BluetoothConfig().ScanWindow)
			assert.False(t, c.Tele.Enabled)
		}, ""},

		{"target-mac", `target { mac = " 28cdc114B83C " names = ["ignored"] }`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, mac.MustParse("28:CD:C1:14:B8:3C"), c.FilterTarget().MAC)
			}, ""},

		{"full", `
log_debug = true
target { names = [" pico ", "", "WT901"] }
gatt { start_command = "ff aa 03 08 00" }
link {
	settle_sec = 0.25
	subscribe_retry_sec = 1
	subscribe_attempts = 3
	cooldown_link_lost_sec = 0.5
	rescan_sec = 7
	scan_window_sec = 4
	adapter = "hci1"
}
decode { format = "i16x6" accel_threshold = 4 }
record { dir = "/tmp/imu" prefix = "run" flush_interval_sec = 2.5 max_rows = 100 }
status { listen = "127.0.0.1:8080" }
persist { root = "/var/lib/imulink" }
tele { enable = true mqtt_broker = "tcp://localhost:1883" client_id = "bench" }`,
			func(t testing.TB, c *Config) {
				assert.True(t, c.LogDebug)
				assert.Equal(t, []string{"pico", "WT901"}, c.FilterTarget().Names)
				assert.Equal(t, frame.I16x6, c.FrameFormat())
				assert.Equal(t, float32(4), c.FrameOptions().AccelThreshold)
				o := c.LinkOptions()
				assert.Equal(t, 250*time.Millisecond, o.Settle)
				assert.Equal(t, time.Second, o.SubscribeRetry)
				assert.Equal(t, 3, o.SubscribeAttempts)
				assert.Equal(t, 500*time.Millisecond, o.CooldownLinkLost)
				assert.Equal(t, link.DefaultCooldownConnect, o.CooldownConnect)
				assert.Equal(t, 7*time.Second, o.Rescan)
				assert.Equal(t, []byte{0xff, 0xaa, 0x03, 0x08, 0x00}, o.StartCommand)
				assert.Equal(t, 4*time.Second, c.BluetoothConfig().ScanWindow)
				assert.Equal(t, "hci1", c.BluetoothConfig().Adapter)
				assert.Equal(t, recorder.Config{Interval: 2500 * time.Millisecond, MaxRows: 100}, c.RecorderConfig())
				assert.Equal(t, "/tmp/imu/run_20240102_030405.csv", c.SessionPath(time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)))
				assert.Equal(t, "127.0.0.1:8080", c.Status.Listen)
				assert.Equal(t, "bench", c.Tele.ClientID)
				assert.Equal(t, "/var/lib/imulink/tele", c.Tele.PersistPath)
			}, ""},

		{"include-normalize", `
record { dir = "x" }
include "./empty" {}`,
			nil, ""},

		{"include-optional", `
include "decode-pair" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, frame.F32x3Pair, c.FrameFormat())
			}, ""},

		{"include-overwrites", `
decode { format = "i16x6" }
include "decode-pair" {}`,
			func(t testing.TB, c *Config) {
				assert.Equal(t, frame.F32x3Pair, c.FrameFormat())
			}, ""},

		{"error-mac", `target { mac = "28:CD:C1:14:B8" }`, nil, "config target.mac"},
		{"error-mac-zero", `target { mac = "00:00:00:00:00:00" names = ["PICO"] }`, nil, "config target.mac=00:00:00:00:00:00 zero address not valid"},
		{"error-format", `decode { format = "f64x6" }`, nil, "config decode.format"},
		{"error-uuid", `gatt { notify = "nope" }`, nil, "config gatt.notify=nope not valid"},
		{"error-start-command", `gatt { start_command = "zz" }`, nil, "config gatt.start_command"},
		{"error-tele", `tele { enable = true }`, nil, "mqtt_broker=empty"},
		{"error-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			log := log2.NewTest(t, log2.LDebug)
			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"decode-pair":  `decode { format = "f32x3pair" }`,
				"error-syntax": "hello",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, cfg)
				}
			} else {
				require.Error(t, err)
				if !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		})
	}
}

func TestFunctionalBundled(t *testing.T) {
	// not Parallel
	t.Logf("this test needs OS open|read|stat access to file `../../imulink.hcl`")

	log := log2.NewTest(t, log2.LDebug)
	c := MustReadConfig(log, NewOsFullReader(), "../../imulink.hcl")
	assert.NotEmpty(t, c.FilterTarget().String())
}

func TestConfigRedacted(t *testing.T) {
	t.Parallel()

	fs := NewMockFullReader(map[string]string{"test-inline": `
influx { enable = true url = "http://influx:8086" token = "influx-token-value" }
tele {
  enable = true
  mqtt_broker = "tcp://broker:1883"
  mqtt_password = "mqtt-password-value"
  persist_path = "/tmp/q"
}
`})
	c, err := ReadConfig(log2.NewTest(t, log2.LDebug), fs, "test-inline")
	require.NoError(t, err)
	s := c.Redacted()
	assert.NotContains(t, s, "influx-token-value")
	assert.NotContains(t, s, "mqtt-password-value")
	assert.Contains(t, s, "url=http://influx:8086")
	assert.Contains(t, s, "broker=tcp://broker:1883")
	assert.Contains(t, s, "password=***")
}
