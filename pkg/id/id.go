// Package id issues the run IDs of journaled snapshots. IDs are ULIDs, so
// their string order is their creation order.
package id

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator issues strictly increasing IDs, also within one millisecond
// and when the clock steps back.
type Generator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
	last    ulid.ULID
}

// NewGenerator returns a generator reading the clock from now; nil uses
// time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{
		now:     now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next returns the next ID.
func (g *Generator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := ulid.Timestamp(g.now())
	if ms < g.last.Time() {
		ms = g.last.Time()
	}
	u, err := ulid.New(ms, g.entropy)
	if err != nil {
		return "", err
	}
	g.last = u
	return u.String(), nil
}

var std = NewGenerator(nil)

// New returns a fresh run ID from the process wide generator.
func New() string {
	s, err := std.Next()
	if err != nil {
		// only when entropy is exhausted within one millisecond
		panic(err)
	}
	return s
}

// Time returns the creation time encoded in a run ID.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
