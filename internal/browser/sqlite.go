package browser

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// chromeEpochOffset is the number of seconds between 1601-01-01 (the Windows
// epoch Chrome counts from) and 1970-01-01.
const chromeEpochOffset int64 = 11_644_473_600

const (
	firefoxQuery = `SELECT name, value, host, path, expiry, isSecure, isHttpOnly FROM moz_cookies ORDER BY id`
	chromeQuery  = `SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly FROM cookies WHERE value != '' ORDER BY creation_utc`
)

var now = time.Now

// chromeTime converts microseconds since 1601 into a time. Zero means the
// cookie has no expiry.
func chromeTime(usec int64) time.Time {
	if usec == 0 {
		return time.Time{}
	}
	return time.Unix(usec/1_000_000-chromeEpochOffset, 0)
}

func firefoxTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}

// ReadFirefox returns the live cookies for domain from a Firefox
// cookies.sqlite file. dbPath should point to a copy made with SafeCopy.
func ReadFirefox(dbPath, domain string) ([]Cookie, error) {
	cookies, err := querySQLite(dbPath, firefoxQuery, firefoxTime)
	if err != nil {
		return nil, fmt.Errorf("read Firefox cookies: %w", err)
	}
	return filter(cookies, domain, now()), nil
}

// ReadChrome returns the live cookies for domain from a Chrome Cookies file.
// Rows whose value is only available encrypted are skipped.
func ReadChrome(dbPath, domain string) ([]Cookie, error) {
	cookies, err := querySQLite(dbPath, chromeQuery, chromeTime)
	if err != nil {
		return nil, fmt.Errorf("read Chrome cookies: %w", err)
	}
	return filter(cookies, domain, now()), nil
}

func querySQLite(dbPath, query string, expiry func(int64) time.Time) ([]Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cookies []Cookie
	for rows.Next() {
		var (
			c                Cookie
			exp              int64
			secure, httpOnly int
		)
		if err := rows.Scan(&c.Name, &c.Value, &c.Domain, &c.Path, &exp, &secure, &httpOnly); err != nil {
			return nil, err
		}
		c.Expiry = expiry(exp)
		c.Secure = secure != 0
		c.HttpOnly = httpOnly != 0
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}
