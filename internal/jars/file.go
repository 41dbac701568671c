package jars

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/ezdeploy/cookiestore/internal/browser"
	"github.com/ezdeploy/cookiestore/pkg/cookiestore"
)

// FileJar keeps cookies in a Netscape cookies.txt file. Entries for other
// hosts are preserved untouched. The file is reread on every call, so edits
// made by other tools are picked up.
type FileJar struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
	opts options
}

// OpenFile returns a jar backed by path on fs. The file is created on the
// first Set.
func OpenFile(fs afero.Fs, path string, opts ...Option) (*FileJar, error) {
	if info, err := fs.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("cookie file %s is a directory", path)
	}
	j := &FileJar{fs: fs, path: path, opts: newOptions(opts)}
	j.opts.log.Debug("jars: using %s for host %s", path, j.opts.host)
	return j, nil
}

func (j *FileJar) Set(serialized string) error {
	c, err := cookiestore.ParseSetCookie(serialized)
	if err != nil {
		return err
	}
	if strings.ContainsAny(c.Name+c.Value+c.Path, "\t\r\n") {
		return fmt.Errorf("cookie %s: tabs and line breaks cannot be stored in a cookie file", c.Name)
	}
	now := j.opts.now()
	if !c.Expired(now) {
		if c.Value, err = j.opts.seal(c.Value); err != nil {
			return fmt.Errorf("seal cookie %s: %w", c.Name, err)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.load()
	if err != nil {
		return err
	}
	mine, others := j.split(entries)
	mine = cookiestore.Upsert(cookiestore.Live(mine, now), c, now)
	return j.save(append(others, j.toEntries(mine)...))
}

func (j *FileJar) Get() (string, error) {
	cookies, err := j.Cookies()
	if err != nil {
		return "", err
	}
	return cookiestore.FormatJar(cookies), nil
}

// Cookies returns the live cookies of the jar host in file order.
func (j *FileJar) Cookies() ([]cookiestore.Cookie, error) {
	j.mu.Lock()
	entries, err := j.load()
	j.mu.Unlock()
	if err != nil {
		return nil, err
	}
	mine, _ := j.split(entries)
	mine = cookiestore.Live(mine, j.opts.now())
	for i := range mine {
		if mine[i].Value, err = j.opts.open(mine[i].Value); err != nil {
			return nil, fmt.Errorf("open cookie %s: %w", mine[i].Name, err)
		}
	}
	return mine, nil
}

// EndSession removes the session cookies of the jar host.
func (j *FileJar) EndSession() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries, err := j.load()
	if err != nil {
		return 0, err
	}
	kept := entries[:0]
	removed := 0
	for _, e := range entries {
		if e.Domain == j.opts.host && e.Session() {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, j.save(kept)
}

// Close is a no-op; FileJar holds no open handles between calls.
func (j *FileJar) Close() error {
	return nil
}

func (j *FileJar) load() ([]browser.Cookie, error) {
	data, err := afero.ReadFile(j.fs, j.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	return browser.DecodeNetscape(bytes.NewReader(data), j.opts.log)
}

// save rewrites the whole file through a temp file and rename.
func (j *FileJar) save(entries []browser.Cookie) error {
	dir := filepath.Dir(j.path)
	if err := j.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create cookie dir: %w", err)
	}
	tmp, err := afero.TempFile(j.fs, dir, "."+filepath.Base(j.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp cookie file: %w", err)
	}
	err = browser.EncodeNetscape(tmp, entries)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = j.fs.Rename(tmp.Name(), j.path)
	}
	if err != nil {
		_ = j.fs.Remove(tmp.Name())
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}

func (j *FileJar) split(entries []browser.Cookie) (mine []cookiestore.Cookie, others []browser.Cookie) {
	for _, e := range entries {
		if e.Domain != j.opts.host {
			others = append(others, e)
			continue
		}
		mine = append(mine, cookiestore.Cookie{
			Name:    e.Name,
			Value:   e.Value,
			Expires: e.Expiry,
			Path:    e.Path,
		})
	}
	return mine, others
}

func (j *FileJar) toEntries(cookies []cookiestore.Cookie) []browser.Cookie {
	out := make([]browser.Cookie, len(cookies))
	for i, c := range cookies {
		out[i] = browser.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: j.opts.host,
			Path:   c.Path,
			Expiry: c.Expires,
		}
	}
	return out
}

var _ cookiestore.Jar = (*FileJar)(nil)
