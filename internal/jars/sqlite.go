package jars

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ezdeploy/cookiestore/pkg/cookiestore"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS cookies (
	host    TEXT    NOT NULL,
	name    TEXT    NOT NULL,
	path    TEXT    NOT NULL DEFAULT '/',
	value   TEXT    NOT NULL,
	expiry  INTEGER NOT NULL DEFAULT 0,
	created INTEGER NOT NULL,
	PRIMARY KEY (host, name, path)
)`

// SQLiteJar keeps cookies in a SQLite database. Expiry is stored in unix
// seconds, 0 meaning a session cookie.
type SQLiteJar struct {
	db   *sql.DB
	path string
	opts options
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string, opts ...Option) (*SQLiteJar, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cookie database: %w", err)
	}
	// one writer keeps modernc from reporting SQLITE_BUSY between our own calls
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cookie table: %w", err)
	}
	j := &SQLiteJar{db: db, path: path, opts: newOptions(opts)}
	j.opts.log.Debug("jars: opened %s for host %s", path, j.opts.host)
	return j, nil
}

// Set applies one serialized cookie. A cookie already expired at the jar's
// clock deletes the stored one.
func (j *SQLiteJar) Set(serialized string) error {
	c, err := cookiestore.ParseSetCookie(serialized)
	if err != nil {
		return err
	}
	now := j.opts.now()
	if c.Expired(now) {
		_, err := j.db.Exec(`DELETE FROM cookies WHERE host = ? AND name = ? AND path = ?`, j.opts.host, c.Name, c.Path)
		if err != nil {
			return fmt.Errorf("delete cookie %s: %w", c.Name, err)
		}
		j.opts.log.Debug("jars: removed %s", c.Name)
		return nil
	}
	value, err := j.opts.seal(c.Value)
	if err != nil {
		return fmt.Errorf("seal cookie %s: %w", c.Name, err)
	}
	var expiry int64
	if !c.Session() {
		expiry = c.Expires.Unix()
	}
	_, err = j.db.Exec(`INSERT INTO cookies (host, name, path, value, expiry, created)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (host, name, path) DO UPDATE SET value = excluded.value, expiry = excluded.expiry`,
		j.opts.host, c.Name, c.Path, value, expiry, now.UnixNano())
	if err != nil {
		return fmt.Errorf("store cookie %s: %w", c.Name, err)
	}
	return nil
}

func (j *SQLiteJar) Get() (string, error) {
	cookies, err := j.Cookies()
	if err != nil {
		return "", err
	}
	return cookiestore.FormatJar(cookies), nil
}

// Cookies returns the live cookies in creation order, purging expired rows.
func (j *SQLiteJar) Cookies() ([]cookiestore.Cookie, error) {
	now := j.opts.now().Unix()
	if _, err := j.db.Exec(`DELETE FROM cookies WHERE host = ? AND expiry != 0 AND expiry <= ?`, j.opts.host, now); err != nil {
		return nil, fmt.Errorf("purge expired cookies: %w", err)
	}
	rows, err := j.db.Query(`SELECT name, path, value, expiry FROM cookies WHERE host = ? ORDER BY created, rowid`, j.opts.host)
	if err != nil {
		return nil, fmt.Errorf("query cookies: %w", err)
	}
	defer rows.Close()

	var cookies []cookiestore.Cookie
	for rows.Next() {
		var (
			c      cookiestore.Cookie
			stored string
			expiry int64
		)
		if err := rows.Scan(&c.Name, &c.Path, &stored, &expiry); err != nil {
			return nil, fmt.Errorf("scan cookie: %w", err)
		}
		if c.Value, err = j.opts.open(stored); err != nil {
			return nil, fmt.Errorf("open cookie %s: %w", c.Name, err)
		}
		if expiry != 0 {
			c.Expires = time.Unix(expiry, 0)
		}
		cookies = append(cookies, c)
	}
	return cookies, rows.Err()
}

// EndSession deletes the session cookies of this host and reports how many
// were removed.
func (j *SQLiteJar) EndSession() (int, error) {
	res, err := j.db.Exec(`DELETE FROM cookies WHERE host = ? AND expiry = 0`, j.opts.host)
	if err != nil {
		return 0, fmt.Errorf("end session: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (j *SQLiteJar) Close() error {
	return j.db.Close()
}

var _ cookiestore.Jar = (*SQLiteJar)(nil)
