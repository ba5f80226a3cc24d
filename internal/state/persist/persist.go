// Package persist keeps small binary state (link counters) across restarts.
package persist

import (
	"encoding"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/extremofile"
	"github.com/temoto/imulink/log2"
)

type Stater interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

type storage interface {
	Read() ([]byte, error)
	io.Writer
}

// Persist binds Stater to crash safe file pair under root/tag.
// Disabled Persist is a valid no-op.
type Persist struct {
	mu      sync.Mutex
	log     *log2.Log
	tag     string
	target  Stater
	storage storage
}

func (self *Persist) Init(tag string, target Stater, root string, enabled bool, log *log2.Log) error {
	if target == nil {
		panic("code error persist target=nil")
	}
	self.tag, self.target, self.log = tag, target, log
	if !enabled {
		self.log.Debugf("persist %s disabled", tag)
		return nil
	}
	if root == "" {
		return errors.NotValidf("persist %s enabled but root=empty", tag)
	}
	self.storage = extremofile.New(extremofile.Config{
		Dir:      filepath.Join(root, tag),
		DirPerm:  0755,
		FilePerm: 0644,
	})
	return nil
}

func (self *Persist) Enabled() bool { return self.storage != nil }

// Load reads stored state into target. Nothing stored leaves target untouched.
// Corrupt or unparsable data is reported and dropped, next Store overwrites it.
func (self *Persist) Load() error {
	self.mustInit()
	if self.storage == nil {
		return nil
	}
	self.mu.Lock()
	defer self.mu.Unlock()

	tbegin := time.Now()
	b, err := self.storage.Read()
	self.log.Debugf("persist %s read len=%d duration=%v", self.tag, len(b), time.Since(tbegin))
	switch {
	case extremofile.IsCorrupt(err):
		self.log.Errorf("persist %s corrupt, starting fresh err=%v", self.tag, err)
		return nil
	case extremofile.IsCritical(err):
		return errors.Annotatef(err, "persist %s Load", self.tag)
	case err != nil:
		// main file broken, backup restored
		self.log.Errorf("persist %s recovered from backup err=%v", self.tag, err)
	}
	if b == nil {
		return nil
	}
	if err := self.target.UnmarshalBinary(b); err != nil {
		self.log.Errorf("persist %s unmarshal, starting fresh err=%v", self.tag, err)
	}
	return nil
}

func (self *Persist) Store() error {
	self.mustInit()
	if self.storage == nil {
		return nil
	}
	self.mu.Lock()
	defer self.mu.Unlock()

	b, err := self.target.MarshalBinary()
	if err != nil {
		return errors.Annotatef(err, "persist %s marshal", self.tag)
	}
	tbegin := time.Now()
	_, err = self.storage.Write(b)
	self.log.Debugf("persist %s write len=%d duration=%v", self.tag, len(b), time.Since(tbegin))
	return errors.Annotatef(err, "persist %s Store", self.tag)
}

func (self *Persist) mustInit() {
	if self.tag == "" {
		panic("code error persist must call .Init() first")
	}
}
