package recorder

import (
	"bufio"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/imulink/internal/types"
)

var CSVHeader = []string{"timestamp", "ax", "ay", "az", "gx", "gy", "gz"}

const sessionTimeLayout = "20060102_150405"

// SessionPath is dir/prefix_YYYYMMDD_HHMMSS.csv for session start t.
func SessionPath(dir, prefix string, t time.Time) string {
	return filepath.Join(dir, prefix+"_"+t.Format(sessionTimeLayout)+".csv")
}

// CSV is append-only sample log, header written once at creation.
type CSV struct {
	mu   sync.Mutex
	path string
	f    *os.File
	bw   *bufio.Writer
	w    *csv.Writer
	row  [7]string
}

var _ Sink = &CSV{}

func NewCSV(path string) (*CSV, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Annotatef(err, "csv mkdir=%s", dir)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Annotatef(err, "csv open=%s", path)
	}
	self := &CSV{path: path, f: f}
	self.bw = bufio.NewWriter(f)
	self.w = csv.NewWriter(self.bw)
	if err = self.w.Write(CSVHeader); err == nil {
		err = self.flush()
	}
	if err != nil {
		_ = f.Close()
		return nil, errors.Annotatef(err, "csv header path=%s", path)
	}
	return self, nil
}

func (self *CSV) Path() string { return self.path }

func (self *CSV) WriteSamples(ss []types.Sample) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.f == nil {
		return errors.Annotatef(ErrClosed, "csv path=%s", self.path)
	}
	for _, s := range ss {
		self.row[0] = strconv.FormatFloat(s.Timestamp, 'f', -1, 64)
		self.row[1] = formatF32(s.Accel.X)
		self.row[2] = formatF32(s.Accel.Y)
		self.row[3] = formatF32(s.Accel.Z)
		self.row[4] = formatF32(s.Gyro.X)
		self.row[5] = formatF32(s.Gyro.Y)
		self.row[6] = formatF32(s.Gyro.Z)
		if err := self.w.Write(self.row[:]); err != nil {
			return errors.Annotatef(err, "csv write path=%s", self.path)
		}
	}
	return errors.Annotatef(self.flush(), "csv write path=%s", self.path)
}

func (self *CSV) flush() error {
	self.w.Flush()
	if err := self.w.Error(); err != nil {
		return err
	}
	return self.bw.Flush()
}

func (self *CSV) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.f == nil {
		return nil
	}
	err := self.flush()
	if e := self.f.Close(); err == nil {
		err = e
	}
	self.f = nil
	return errors.Annotatef(err, "csv close path=%s", self.path)
}

func formatF32(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
