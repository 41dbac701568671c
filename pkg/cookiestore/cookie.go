package cookiestore

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RootPath is the only path a Store writes cookies under.
const RootPath = "/"

// Cookie is one record of a host jar.
type Cookie struct {
	Name  string
	Value string
	// Expires is zero for session cookies.
	Expires time.Time
	Path    string
}

// String serializes c the way Store.Write hands it to a jar:
// "name=value; expires=<HTTP-date>; path=/". The expires segment is left out
// for session cookies.
func (c Cookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	if !c.Expires.IsZero() {
		b.WriteString("; expires=")
		b.WriteString(c.Expires.UTC().Format(http.TimeFormat))
	}
	b.WriteString("; path=")
	b.WriteString(c.pathOrRoot())
	return b.String()
}

// Session reports whether c has no expiration.
func (c Cookie) Session() bool {
	return c.Expires.IsZero()
}

// Expired reports whether c is no longer visible at now.
func (c Cookie) Expired(now time.Time) bool {
	return !c.Expires.IsZero() && !c.Expires.After(now)
}

func (c Cookie) pathOrRoot() string {
	if c.Path == "" {
		return RootPath
	}
	return c.Path
}

// ParseSetCookie parses the string a jar setter receives. Attribute names are
// case-insensitive; attributes other than expires and path are ignored, and
// an expires value that is not a valid HTTP-date is ignored as well.
func ParseSetCookie(s string) (Cookie, error) {
	segments := strings.Split(s, ";")
	pair := strings.TrimSpace(segments[0])
	name, value, found := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return Cookie{}, &Error{Op: "parse", Name: name, Kind: ErrMalformedCookie}
	}
	c := Cookie{
		Name:  name,
		Value: strings.TrimSpace(value),
		Path:  RootPath,
	}
	for _, seg := range segments[1:] {
		key, val, _ := strings.Cut(seg, "=")
		val = strings.TrimSpace(val)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if t, err := http.ParseTime(val); err == nil {
				c.Expires = t
			}
		case "path":
			if val != "" {
				c.Path = val
			}
		}
	}
	return c, nil
}

// Lookup scans a jar string ("a=1; b=2") for name and returns the value of
// the first matching pair. Leading whitespace of each pair is ignored; the
// value is returned as stored, without percent-decoding.
func Lookup(jar, name string) (string, bool) {
	prefix := name + "="
	for _, seg := range strings.Split(jar, ";") {
		seg = strings.TrimLeft(seg, " \t")
		if strings.HasPrefix(seg, prefix) {
			return seg[len(prefix):], true
		}
	}
	return "", false
}

// FormatJar renders cookies the way a jar getter reports them.
func FormatJar(cookies []Cookie) string {
	pairs := make([]string, len(cookies))
	for i, c := range cookies {
		pairs[i] = c.Name + "=" + c.Value
	}
	return strings.Join(pairs, "; ")
}

// Upsert applies one set operation to list. A cookie that is already expired
// at now removes the existing cookie with the same name and path. Otherwise it
// replaces that cookie in place or is appended, so creation order is kept.
func Upsert(list []Cookie, c Cookie, now time.Time) []Cookie {
	path := c.pathOrRoot()
	for i, old := range list {
		if old.Name != c.Name || old.pathOrRoot() != path {
			continue
		}
		if c.Expired(now) {
			return append(list[:i], list[i+1:]...)
		}
		list[i] = c
		return list
	}
	if c.Expired(now) {
		return list
	}
	return append(list, c)
}

// Live returns the cookies of list that are still visible at now.
func Live(list []Cookie, now time.Time) []Cookie {
	out := make([]Cookie, 0, len(list))
	for _, c := range list {
		if !c.Expired(now) {
			out = append(out, c)
		}
	}
	return out
}

// EscapeValue percent-encodes s so it can be stored as a cookie value.
func EscapeValue(s string) string {
	return url.PathEscape(s)
}

// UnescapeValue reverses EscapeValue.
func UnescapeValue(s string) (string, error) {
	return url.PathUnescape(s)
}

// checkName and checkValue refuse anything ParseSetCookie would not hand
// back unchanged.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, ";=\t\r\n") || name != strings.TrimSpace(name) {
		return ErrInvalidName
	}
	return nil
}

func checkValue(value string) error {
	if strings.ContainsAny(value, ";\t\r\n") || value != strings.TrimSpace(value) {
		return ErrInvalidValue
	}
	return nil
}
