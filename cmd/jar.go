package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	envs "github.com/ezdeploy/cookiestore/common"
	"github.com/ezdeploy/cookiestore/internal/jars"
	"github.com/ezdeploy/cookiestore/pkg/cookiestore"
	"github.com/ezdeploy/cookiestore/pkg/credman"
	"github.com/ezdeploy/cookiestore/pkg/credman/keyring"
	"github.com/ezdeploy/cookiestore/pkg/logger"
)

// cookieJar is what every --jar scheme resolves to.
type cookieJar interface {
	cookiestore.Jar
	Cookies() ([]cookiestore.Cookie, error)
	EndSession() (int, error)
	Close() error
}

var (
	appFs = afero.NewOsFs()
	now   = time.Now
)

var (
	stdout    io.Writer = os.Stdout
	logOutput io.Writer = os.Stderr
)

var newKeyStores = func(configDir string) []credman.KeyStore {
	return []credman.KeyStore{
		keyring.NewKeyring(),
		keyring.NewFileKeyStore(appFs, configDir),
	}
}

// memoryJar adapts cookiestore.MemoryJar to cookieJar.
type memoryJar struct {
	*cookiestore.MemoryJar
}

func (m memoryJar) Cookies() ([]cookiestore.Cookie, error) {
	return m.MemoryJar.Cookies(), nil
}

func (m memoryJar) EndSession() (int, error) {
	before := m.Len()
	m.MemoryJar.EndSession()
	return before - m.Len(), nil
}

func (m memoryJar) Close() error {
	return nil
}

func newLogger(ctx *cli.Context) logger.Logger {
	return logger.NewStandardLogger(log.New(logOutput, "cookiestore: ", log.LstdFlags), ctx.GlobalBool("debug"))
}

// openJar resolves the --jar flag. An empty value selects the SQLite jar in
// the config directory.
func openJar(ctx *cli.Context, l logger.Logger) (cookieJar, error) {
	opts := []jars.Option{
		jars.WithHost(ctx.GlobalString("domain")),
		jars.WithLogger(l),
		jars.WithClock(now),
	}
	jarArg := ctx.GlobalString("jar")
	needDir := jarArg == "" || ctx.GlobalBool("encrypt")
	var configDir string
	if needDir {
		dir, err := envs.ConfigDir(appFs)
		if err != nil {
			return nil, fmt.Errorf("config dir: %w", err)
		}
		configDir = dir
	}
	if ctx.GlobalBool("encrypt") {
		key, err := credman.ResolveKey(os.Getenv(envs.CookieKeyEnv), newKeyStores(configDir)...)
		if err != nil {
			return nil, err
		}
		sealer, err := credman.NewSealer(key)
		if err != nil {
			return nil, err
		}
		opts = append(opts, jars.WithSealer(sealer))
	}
	if jarArg == "" {
		jarArg = "sqlite:" + filepath.Join(configDir, envs.DefaultJarFile)
	}

	scheme, path, _ := strings.Cut(jarArg, ":")
	switch scheme {
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("jar %q: missing database path", jarArg)
		}
		return jars.OpenSQLite(path, opts...)
	case "file":
		if path == "" {
			return nil, fmt.Errorf("jar %q: missing file path", jarArg)
		}
		return jars.OpenFile(appFs, path, opts...)
	case "memory":
		l.Warning("memory jar selected, cookies are dropped when the command exits")
		return memoryJar{cookiestore.NewMemoryJar(now)}, nil
	default:
		return nil, fmt.Errorf("jar %q: unknown scheme %q", jarArg, scheme)
	}
}

// withStore opens the jar and a Store over it for one command run.
func withStore(ctx *cli.Context, cmd string, fn func(s *cookiestore.Store, jar cookieJar, l logger.Logger) error) error {
	l := newLogger(ctx)
	defer l.Close()
	jar, err := openJar(ctx, l)
	if err != nil {
		return runtimeErr(ctx, cmd, "open_jar", err)
	}
	defer jar.Close()
	return fn(cookiestore.New(jar, cookiestore.WithLogger(l), cookiestore.WithClock(now)), jar, l)
}

// runtimeErr reports err and turns it into exit status 1.
func runtimeErr(ctx *cli.Context, cmd, action string, err error) error {
	printRuntimeErr(ctx, cmd, action, err)
	return cli.NewExitError("", 1)
}
