package cookiestore

import (
	"sync"
	"time"
)

// Jar is the host cookie store a Store writes to and reads from.
type Jar interface {
	// Get returns every visible cookie as "name=value" pairs joined by "; ".
	Get() (string, error)
	// Set stores one serialized cookie as produced by Cookie.String.
	Set(serialized string) error
}

// MemoryJar is a process-local Jar with browser semantics: overwrite by name
// and path, removal when set with a past expiry, and expiry on read.
type MemoryJar struct {
	mu      sync.Mutex
	now     func() time.Time
	cookies []Cookie
}

// NewMemoryJar returns an empty jar. A nil now uses time.Now.
func NewMemoryJar(now func() time.Time) *MemoryJar {
	if now == nil {
		now = time.Now
	}
	return &MemoryJar{now: now}
}

func (j *MemoryJar) Get() (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = Live(j.cookies, j.now())
	return FormatJar(j.cookies), nil
}

func (j *MemoryJar) Set(serialized string) error {
	c, err := ParseSetCookie(serialized)
	if err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = Upsert(j.cookies, c, j.now())
	return nil
}

// Cookies returns a copy of the live cookies in creation order.
func (j *MemoryJar) Cookies() []Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = Live(j.cookies, j.now())
	out := make([]Cookie, len(j.cookies))
	copy(out, j.cookies)
	return out
}

// Len reports the number of live cookies.
func (j *MemoryJar) Len() int {
	return len(j.Cookies())
}

// EndSession drops every session cookie, as a browser does on exit.
func (j *MemoryJar) EndSession() {
	j.mu.Lock()
	defer j.mu.Unlock()
	kept := j.cookies[:0]
	for _, c := range j.cookies {
		if !c.Session() {
			kept = append(kept, c)
		}
	}
	j.cookies = kept
}

var _ Jar = (*MemoryJar)(nil)
