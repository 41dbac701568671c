// Package common holds the environment variable names and the config
// directory lookup shared by the cookiestore command and its packages.
package common

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Environment variable names for configuration.
const (
	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "COOKIESTORE_CONFIG_DIR"

	// JarEnv selects the jar, same syntax as the --jar flag.
	JarEnv = "COOKIESTORE_JAR"

	// CookieKeyEnv carries a hex encoded 32 byte key used to seal values.
	CookieKeyEnv = "COOKIESTORE_COOKIE_KEY"

	// DebugEnv is the environment variable to enable debug logging.
	DebugEnv = "COOKIESTORE_DEBUG"
)

// DefaultJarFile is the SQLite jar created in the config directory when no
// jar is given.
const DefaultJarFile = "cookies.db"

var userConfigDir = os.UserConfigDir

// ConfigDir returns the absolute configuration directory, creating it on fs
// if needed. ConfigDirEnv wins over the user config directory.
func ConfigDir(fs afero.Fs) (string, error) {
	dir := os.Getenv(ConfigDirEnv)
	if dir == "" {
		base, err := userConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(base, "cookiestore")
	}
	return setConfigDir(fs, dir)
}

func setConfigDir(fs afero.Fs, dir string) (string, error) {
	if dir == "" {
		return "", errors.New("config dir is empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(abs, 0755); err != nil {
		return "", err
	}
	return abs, nil
}
