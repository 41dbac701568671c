// Package jars provides persistent cookiestore.Jar implementations: a SQLite
// database and a Netscape cookies.txt file. Both scope their cookies to a
// single host, emulate browser jar semantics and can seal values at rest.
package jars

import (
	"time"

	"github.com/ezdeploy/cookiestore/pkg/logger"
)

// DefaultHost is the jar scope used when WithHost is not given.
const DefaultHost = "localhost"

// Sealer encrypts values before they are persisted. *credman.Sealer
// implements it.
type Sealer interface {
	Seal(value string) (string, error)
	Open(text string) (string, error)
}

type options struct {
	host   string
	sealer Sealer
	now    func() time.Time
	log    logger.Logger
}

// Option configures a jar.
type Option func(*options)

// WithHost scopes the jar to host.
func WithHost(host string) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithSealer encrypts every stored value with s.
func WithSealer(s Sealer) Option {
	return func(o *options) {
		o.sealer = s
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		host: DefaultHost,
		now:  time.Now,
		log:  logger.NewNopLogger(),
	}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func (o options) seal(v string) (string, error) {
	if o.sealer == nil {
		return v, nil
	}
	return o.sealer.Seal(v)
}

func (o options) open(v string) (string, error) {
	if o.sealer == nil {
		return v, nil
	}
	return o.sealer.Open(v)
}
