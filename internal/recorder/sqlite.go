package recorder

import (
	"database/sql"
	_ "embed"
	"sync"

	"github.com/juju/errors"
	_ "github.com/mattn/go-sqlite3"
	"github.com/temoto/imulink/internal/types"
)

//go:embed schema.sql
var schemaSQL string

const (
	insertSessionSQL = `INSERT INTO sessions (device) VALUES (?)`
	insertSampleSQL  = `INSERT INTO samples (session_id, t, ax, ay, az, gx, gy, gz) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
)

// Sqlite stores every run as a session row with its samples.
type Sqlite struct {
	mu        sync.Mutex
	db        *sql.DB
	sessionID int64
}

var _ Sink = &Sqlite{}

func NewSqlite(path, device string) (*Sqlite, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, errors.Annotatef(err, "sqlite open=%s", path)
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, errors.Annotatef(err, "sqlite schema path=%s", path)
	}
	res, err := db.Exec(insertSessionSQL, device)
	if err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "sqlite insert session")
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = db.Close()
		return nil, errors.Annotate(err, "sqlite session id")
	}
	return &Sqlite{db: db, sessionID: id}, nil
}

func (self *Sqlite) SessionID() int64 { return self.sessionID }

// WriteSamples inserts batch in one transaction.
func (self *Sqlite) WriteSamples(ss []types.Sample) error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.db == nil {
		return errors.Annotate(ErrClosed, "sqlite")
	}
	tx, err := self.db.Begin()
	if err != nil {
		return errors.Annotate(err, "sqlite begin")
	}
	stmt, err := tx.Prepare(insertSampleSQL)
	if err != nil {
		_ = tx.Rollback()
		return errors.Annotate(err, "sqlite prepare")
	}
	defer stmt.Close()
	for _, s := range ss {
		if _, err = stmt.Exec(self.sessionID, s.Timestamp,
			s.Accel.X, s.Accel.Y, s.Accel.Z, s.Gyro.X, s.Gyro.Y, s.Gyro.Z); err != nil {
			_ = tx.Rollback()
			return errors.Annotate(err, "sqlite insert sample")
		}
	}
	return errors.Annotate(tx.Commit(), "sqlite commit")
}

// Count returns stored sample count of current session.
func (self *Sqlite) Count() (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := self.db.QueryRow(`SELECT COUNT(*) FROM samples WHERE session_id = ?`, self.sessionID).Scan(&n)
	return n, errors.Annotate(err, "sqlite count")
}

func (self *Sqlite) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()
	if self.db == nil {
		return nil
	}
	err := self.db.Close()
	self.db = nil
	return errors.Annotate(err, "sqlite close")
}
