// Package status exposes current link state, latest sample and
// orientation estimate over HTTP.
package status

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/temoto/imulink/internal/link"
	"github.com/temoto/imulink/internal/orient"
	"github.com/temoto/imulink/internal/types"
	"github.com/temoto/imulink/log2"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Board is the latest known state, written by pipeline hooks, read by HTTP.
type Board struct {
	log     *log2.Log
	started atomic_clock.Clock
	orient  *orient.Estimator // optional
	statFun func() link.Stat  // optional

	mu         sync.Mutex
	status     link.Status
	sample     types.Sample
	hasSample  bool
	lastSample atomic_clock.Clock
}

func NewBoard(log *log2.Log, est *orient.Estimator, statFun func() link.Stat) *Board {
	self := &Board{
		log:     log,
		orient:  est,
		statFun: statFun,
		status:  link.Status{State: link.StateIdle, Since: time.Now()},
	}
	self.started.SetNow()
	return self
}

func (self *Board) SetStatus(s link.Status) {
	self.mu.Lock()
	self.status = s
	self.mu.Unlock()
}

// SetSample also feeds orientation estimator.
func (self *Board) SetSample(s types.Sample) {
	self.mu.Lock()
	self.sample, self.hasSample = s, true
	self.mu.Unlock()
	self.lastSample.SetNow()
	if self.orient != nil {
		self.orient.Update(s)
	}
}

func (self *Board) Status() link.Status {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.status
}

func (self *Board) Sample() (types.Sample, bool) {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.sample, self.hasSample
}

type StatusResponse struct {
	link.Status
	Halted    bool       `json:"halted"`
	UptimeSec float64    `json:"uptime_sec"`
	Stat      *link.Stat `json:"stat,omitempty"`
}

type SampleResponse struct {
	Sample      types.Sample   `json:"sample"`
	AgeSec      float64        `json:"age_sec"`
	Orientation *orient.Angles `json:"orientation,omitempty"`
}

func (self *Board) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", self.handleHealth)
	r.Get("/status", self.handleStatus)
	r.Get("/sample", self.handleSample)
	return r
}

func (self *Board) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := self.Status()
	if st.Halted() {
		self.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "halted", "reason": st.Reason.String()})
		return
	}
	self.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "state": st.State.String()})
}

func (self *Board) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := self.Status()
	resp := StatusResponse{
		Status:    st,
		Halted:    st.Halted(),
		UptimeSec: atomic_clock.Since(&self.started).Seconds(),
	}
	if self.statFun != nil {
		stat := self.statFun()
		resp.Stat = &stat
	}
	self.writeJSON(w, http.StatusOK, resp)
}

func (self *Board) handleSample(w http.ResponseWriter, r *http.Request) {
	s, ok := self.Sample()
	if !ok {
		self.writeJSON(w, http.StatusNotFound, map[string]string{"error": "no sample yet"})
		return
	}
	resp := SampleResponse{Sample: s, AgeSec: atomic_clock.Since(&self.lastSample).Seconds()}
	if self.orient != nil {
		if a, ok := self.orient.Current(); ok {
			resp.Orientation = &a
		}
	}
	self.writeJSON(w, http.StatusOK, resp)
}

// writeJSON encodes before header, so unencodable value (NaN) gives 500.
func (self *Board) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		self.log.Errorf("status encode err=%v", err)
		buf.Reset()
		code = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(map[string]string{"error": err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		self.log.Debugf("status write err=%v", err)
	}
}

// Serve blocks until ctx is done or listen fails.
func (self *Board) Serve(ctx context.Context, listen string) error {
	srv := &http.Server{
		Addr:         listen,
		Handler:      self.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	errch := make(chan error, 1)
	go func() {
		self.log.Infof("status listening on %s", listen)
		errch <- srv.ListenAndServe()
	}()
	select {
	case err := <-errch:
		return errors.Annotatef(err, "status listen=%s", listen)
	case <-ctx.Done():
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return errors.Annotate(err, "status shutdown")
	}
	return nil
}
