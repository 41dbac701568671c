package cookiestore

import (
	"math"
	"strconv"
	"time"
)

// Expiry is the lifetime requested for a written cookie: either none (a
// session cookie) or a number of hours from the moment of writing.
type Expiry struct {
	hours float64
	set   bool
}

// NoExpiry requests a session cookie, i.e. no expires attribute at all.
func NoExpiry() Expiry {
	return Expiry{}
}

// Hours requests expiration h hours after the write. Fractions are allowed.
// Hours(0) is the same as NoExpiry; negative values are rejected by Write.
func Hours(h float64) Expiry {
	return Expiry{hours: h, set: true}
}

// Until converts an absolute expiration time into an Expiry relative to now.
// A deadline that has already passed yields a negative Expiry.
func Until(deadline, now time.Time) Expiry {
	return Hours(deadline.Sub(now).Hours())
}

// IsSession reports whether the cookie will be written without expires.
func (e Expiry) IsSession() bool {
	return !e.set || e.hours == 0
}

// Duration returns the offset added to the write time. It is zero for
// session cookies.
func (e Expiry) Duration() time.Duration {
	if e.IsSession() {
		return 0
	}
	return time.Duration(e.hours * float64(time.Hour))
}

func (e Expiry) valid() bool {
	if !e.set {
		return true
	}
	h := e.hours
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return false
	}
	return h*float64(time.Hour) < math.MaxInt64
}

func (e Expiry) String() string {
	if e.IsSession() {
		return "session"
	}
	return strconv.FormatFloat(e.hours, 'f', -1, 64) + "h"
}
