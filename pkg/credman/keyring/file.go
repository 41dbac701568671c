package keyring

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	keyFileName = "cookie.key"
	keyFileMode = 0600
)

// FileKeyStore keeps the key hex-encoded in <dir>/cookie.key with 0600
// permissions. It is the fallback when no OS keyring is reachable.
type FileKeyStore struct {
	fs  afero.Fs
	dir string
}

func NewFileKeyStore(fs afero.Fs, dir string) *FileKeyStore {
	return &FileKeyStore{fs: fs, dir: dir}
}

func (f *FileKeyStore) path() string {
	return filepath.Join(f.dir, keyFileName)
}

// SetKey generates a key and writes it through a temp file and rename so an
// interrupted write never leaves a truncated key behind.
func (f *FileKeyStore) SetKey() ([]byte, error) {
	if err := f.fs.MkdirAll(f.dir, 0755); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	key, err := newKey()
	if err != nil {
		return nil, err
	}
	tmp, err := afero.TempFile(f.fs, f.dir, ".cookie.key.tmp.*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_, err = tmp.WriteString(hex.EncodeToString(key))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = f.fs.Chmod(tmpPath, keyFileMode)
	}
	if err == nil {
		err = f.fs.Rename(tmpPath, f.path())
	}
	if err != nil {
		_ = f.fs.Remove(tmpPath)
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}

// GetKey reads the key file. A missing file yields an error satisfying
// os.IsNotExist.
func (f *FileKeyStore) GetKey() ([]byte, error) {
	data, err := afero.ReadFile(f.fs, f.path())
	if err != nil {
		return nil, err
	}
	return decodeKey(string(data))
}

func (f *FileKeyStore) DeleteKey() error {
	err := f.fs.Remove(f.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
