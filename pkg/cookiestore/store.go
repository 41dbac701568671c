package cookiestore

import (
	"time"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

// Store writes and reads cookies through a Jar. It keeps no state of its own
// besides its collaborators, so it is as safe for concurrent use as its Jar.
type Store struct {
	jar Jar
	now func() time.Time
	log logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of write times.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger receiving debug traces. Values are never logged.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New returns a Store bound to jar.
func New(jar Jar, opts ...Option) *Store {
	s := &Store{
		jar: jar,
		now: time.Now,
		log: logger.NewNopLogger(),
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Write stores value under name with path "/". Expiry NoExpiry (or Hours(0))
// writes a session cookie; otherwise the cookie expires the given number of
// hours after now. Invalid input is reported as *Error and never reaches the
// jar. Errors returned by the jar are passed through unchanged.
func (s *Store) Write(name, value string, expiry Expiry) error {
	if err := checkName(name); err != nil {
		return &Error{Op: "write", Name: name, Kind: err}
	}
	if err := checkValue(value); err != nil {
		return &Error{Op: "write", Name: name, Kind: err}
	}
	if !expiry.valid() {
		return &Error{Op: "write", Name: name, Kind: ErrInvalidExpiry}
	}
	c := Cookie{Name: name, Value: value, Path: RootPath}
	if !expiry.IsSession() {
		now := s.now()
		// HTTP-date carries whole seconds; never round a live cookie into the past
		c.Expires = now.Add(expiry.Duration()).Round(time.Second)
		if !c.Expires.After(now) {
			c.Expires = now.Truncate(time.Second).Add(time.Second)
		}
	}
	s.log.Debug("cookiestore: write %s (expiry %s)", name, expiry)
	return s.jar.Set(c.String())
}

// Read returns the value of the first cookie named name. A missing cookie is
// reported with ok == false and a nil error.
func (s *Store) Read(name string) (value string, ok bool, err error) {
	if err := checkName(name); err != nil {
		return "", false, &Error{Op: "read", Name: name, Kind: err}
	}
	raw, err := s.jar.Get()
	if err != nil {
		return "", false, err
	}
	value, ok = Lookup(raw, name)
	if !ok {
		s.log.Debug("cookiestore: %s not present", name)
	}
	return value, ok, nil
}
