package recorder

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
)

const (
	InfluxMeasurement   = "imu"
	influxPingTimeout   = 5 * time.Second
	influxBatchSize     = 500
	influxFlushInterval = 1000 // ms
)

type InfluxConfig struct {
	URL    string
	Token  string
	Org    string
	Bucket string
	Device string // tag value
}

// Influx writes points through non-blocking batched write API.
// Async write errors are logged.
type Influx struct {
	log    *log2.Log
	client influxdb2.Client
	write  api.WriteAPI
	device string
	// sample timestamps are relative, points are stamped base+t
	base time.Time
}

var _ Sink = &Influx{}

func NewInflux(ctx context.Context, log *log2.Log, config InfluxConfig) (*Influx, error) {
	client := influxdb2.NewClientWithOptions(config.URL, config.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(influxBatchSize).
			SetFlushInterval(influxFlushInterval))
	pingCtx, cancel := context.WithTimeout(ctx, influxPingTimeout)
	defer cancel()
	ok, err := client.Ping(pingCtx)
	if err == nil && !ok {
		err = errors.New("server not healthy")
	}
	if err != nil {
		client.Close()
		return nil, errors.Annotatef(err, "influx ping url=%s", config.URL)
	}
	self := &Influx{
		log:    log,
		client: client,
		write:  client.WriteAPI(config.Org, config.Bucket),
		device: config.Device,
		base:   time.Now(),
	}
	go func(ch <-chan error) {
		for err := range ch {
			self.log.Errorf("influx write err=%v", err)
		}
	}(self.write.Errors())
	return self, nil
}

func (self *Influx) WriteSamples(ss []types.Sample) error {
	for _, s := range ss {
		self.write.WritePoint(samplePoint(self.device, self.base, s))
	}
	return nil
}

func (self *Influx) Close() error {
	self.write.Flush()
	self.client.Close()
	return nil
}

func samplePoint(device string, base time.Time, s types.Sample) *write.Point {
	return write.NewPoint(InfluxMeasurement,
		map[string]string{"device": device},
		map[string]interface{}{
			"ax": s.Accel.X, "ay": s.Accel.Y, "az": s.Accel.Z,
			"gx": s.Gyro.X, "gy": s.Gyro.Y, "gz": s.Gyro.Z,
		},
		base.Add(time.Duration(s.Timestamp*float64(time.Second))))
}
