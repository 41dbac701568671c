package browser

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

type storeRow struct {
	Name     string
	Value    string
	Host     string
	Path     string
	Expiry   int64
	Secure   int
	HttpOnly int
}

func execAll(t *testing.T, dbPath string, stmts ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			db.Close()
			t.Fatalf("exec %q: %v", s, err)
		}
	}
	return db
}

// makeFirefoxStore writes a cookies.sqlite with the moz_cookies table.
// Expiry is in unix seconds.
func makeFirefoxStore(t *testing.T, dir string, rows []storeRow) string {
	t.Helper()
	dbPath := filepath.Join(dir, "cookies.sqlite")
	db := execAll(t, dbPath, `CREATE TABLE moz_cookies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        host TEXT NOT NULL,
        path TEXT NOT NULL DEFAULT '/',
        expiry INTEGER NOT NULL DEFAULT 0,
        isSecure INTEGER NOT NULL DEFAULT 0,
        isHttpOnly INTEGER NOT NULL DEFAULT 0
    )`)
	defer db.Close()
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Name, r.Value, r.Host, r.Path, r.Expiry, r.Secure, r.HttpOnly)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return dbPath
}

// makeChromeStore writes a Cookies file with the Chrome cookies table.
// Expiry is in unix seconds and converted to Chrome microseconds; 0 stays 0.
func makeChromeStore(t *testing.T, dir string, rows []storeRow) string {
	t.Helper()
	dbPath := filepath.Join(dir, "Cookies")
	db := execAll(t, dbPath, `CREATE TABLE cookies (
        creation_utc INTEGER NOT NULL,
        host_key TEXT NOT NULL,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        encrypted_value BLOB NOT NULL DEFAULT x'',
        path TEXT NOT NULL,
        expires_utc INTEGER NOT NULL,
        is_secure INTEGER NOT NULL,
        is_httponly INTEGER NOT NULL
    )`)
	defer db.Close()
	for i, r := range rows {
		exp := r.Expiry
		if exp != 0 {
			exp = (exp + chromeEpochOffset) * 1_000_000
		}
		_, err := db.Exec(`INSERT INTO cookies (creation_utc, host_key, name, value, path, expires_utc, is_secure, is_httponly) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i+1, r.Host, r.Name, r.Value, r.Path, exp, r.Secure, r.HttpOnly)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return dbPath
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func future() int64 { return time.Now().Add(24 * time.Hour).Unix() }
func past() int64   { return time.Now().Add(-24 * time.Hour).Unix() }

func names(cookies []Cookie) []string {
	out := make([]string, len(cookies))
	for i, c := range cookies {
		out[i] = c.Name
	}
	return out
}
