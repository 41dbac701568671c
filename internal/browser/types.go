package browser

import "time"

// Format identifies the layout of a cookie store file.
type Format int

const (
	FormatUnknown Format = iota
	FormatFirefox
	FormatChrome
	FormatNetscape
)

func (f Format) String() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// Cookie is one entry read from a browser store. Value is sensitive.
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
	// Expiry is zero for session cookies.
	Expiry   time.Time
	Secure   bool
	HttpOnly bool
}

// Session reports whether the cookie has no expiry.
func (c Cookie) Session() bool {
	return c.Expiry.IsZero()
}

func (c Cookie) expired(now time.Time) bool {
	return !c.Expiry.IsZero() && !c.Expiry.After(now)
}

// Source describes where imported cookies came from.
type Source struct {
	Path   string
	Format Format
	// Browser is set when the store was found by Discover.
	Browser string
}

// MatchDomain reports whether a cookie stored for cookieDomain is sent to
// domain: exact host, dot-prefixed host, or any subdomain of domain.
func MatchDomain(cookieDomain, domain string) bool {
	dot := "." + domain
	return cookieDomain == domain || cookieDomain == dot ||
		(len(cookieDomain) > len(dot) && cookieDomain[len(cookieDomain)-len(dot):] == dot)
}

// filter keeps the live cookies visible to domain.
func filter(cookies []Cookie, domain string, now time.Time) []Cookie {
	out := cookies[:0]
	for _, c := range cookies {
		if MatchDomain(c.Domain, domain) && !c.expired(now) {
			out = append(out, c)
		}
	}
	return out
}
