package browser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SafeCopy copies a SQLite cookie store, plus its -wal and -shm companions
// when present, into a fresh temporary directory. The returned cleanup
// removes that directory and must always be called.
func SafeCopy(src string) (copied string, cleanup func(), err error) {
	if err := checkStoreFile(src); err != nil {
		return "", nil, err
	}
	dir, err := os.MkdirTemp("", "cookiestore-import-*")
	if err != nil {
		return "", nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	copied = filepath.Join(dir, filepath.Base(src))
	if err := copyFile(src, copied); err != nil {
		cleanup()
		return "", nil, err
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if _, err := os.Stat(src + suffix); err == nil {
			// best effort: a missing journal only loses uncheckpointed rows
			_ = copyFile(src+suffix, copied+suffix)
		}
	}
	return copied, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
