package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli"
	"github.com/vbauerster/mpb/v8"

	"github.com/ezdeploy/cookiestore/cmd/common"
	"github.com/ezdeploy/cookiestore/internal/browser"
	"github.com/ezdeploy/cookiestore/pkg/cookiestore"
	"github.com/ezdeploy/cookiestore/pkg/logger"
)

var (
	setFlags = []cli.Flag{
		cli.Float64Flag{
			Name:  "hours, H",
			Usage: "hours until the cookie expires (default: session cookie)",
		},
	}
	importFlags = []cli.Flag{
		cli.StringFlag{
			Name:  "domain",
			Usage: "domain to import cookies for (default: the jar domain)",
		},
		cli.StringFlag{
			Name:  "browser, b",
			Usage: "browser to look for when no PATH is given: " + strings.Join(browser.BrowserNames(), ", ") + " or auto",
			Value: "auto",
		},
	}

	printRuntimeErr = common.PrintRuntimeErr
	discover        = browser.Discover
)

func set(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("set takes a NAME and a VALUE"))
	}
	expiry := cookiestore.NoExpiry()
	if ctx.IsSet("hours") {
		expiry = cookiestore.Hours(ctx.Float64("hours"))
	}
	return withStore(ctx, "set", func(s *cookiestore.Store, _ cookieJar, _ logger.Logger) error {
		if err := s.Write(ctx.Args().Get(0), ctx.Args().Get(1), expiry); err != nil {
			return runtimeErr(ctx, "set", "write", err)
		}
		return nil
	})
}

func get(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("get takes a NAME"))
	}
	name := ctx.Args().First()
	return withStore(ctx, "get", func(s *cookiestore.Store, _ cookieJar, _ logger.Logger) error {
		value, ok, err := s.Read(name)
		if err != nil {
			return runtimeErr(ctx, "get", "read", err)
		}
		if !ok {
			return cli.NewExitError(fmt.Sprintf("cookiestore: cookie %q is not set", name), 1)
		}
		fmt.Fprintln(stdout, value)
		return nil
	})
}

func list(ctx *cli.Context) error {
	return withStore(ctx, "list", func(_ *cookiestore.Store, jar cookieJar, _ logger.Logger) error {
		s, err := jar.Get()
		if err != nil {
			return runtimeErr(ctx, "list", "get", err)
		}
		if s == "" {
			fmt.Fprintln(stdout, "cookiestore: jar is empty")
			return nil
		}
		fmt.Fprintln(stdout, s)
		return nil
	})
}

func endSession(ctx *cli.Context) error {
	return withStore(ctx, "end-session", func(_ *cookiestore.Store, jar cookieJar, _ logger.Logger) error {
		n, err := jar.EndSession()
		if err != nil {
			return runtimeErr(ctx, "end-session", "end_session", err)
		}
		fmt.Fprintf(stdout, "Removed %d session cookie(s)\n", n)
		return nil
	})
}

func importCookies(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("import takes at most one PATH"))
	}
	if ctx.NArg() == 1 && ctx.IsSet("browser") {
		return common.PrintErrWithCmdHelp(ctx, errors.New("import takes either a PATH or --browser, not both"))
	}
	domain := ctx.String("domain")
	if domain == "" {
		domain = ctx.GlobalString("domain")
	}
	return withStore(ctx, "import", func(s *cookiestore.Store, _ cookieJar, l logger.Logger) error {
		var (
			cookies []browser.Cookie
			src     *browser.Source
			err     error
		)
		if path := ctx.Args().First(); path != "" {
			cookies, src, err = browser.Import(path, domain, l)
		} else {
			cookies, src, err = discover(ctx.String("browser"), domain, l)
		}
		if err != nil {
			return runtimeErr(ctx, "import", "read", err)
		}
		origin := src.Format.String()
		if src.Browser != "" {
			origin = src.Browser
		}
		if len(cookies) == 0 {
			fmt.Fprintf(stdout, "No cookies for %s in %s store %s\n", domain, origin, src.Path)
			return nil
		}
		imported, skipped := writeImported(s, cookies, l)
		fmt.Fprintf(stdout, "Imported %d cookie(s) from %s store %s", imported, origin, src.Path)
		if skipped > 0 {
			fmt.Fprintf(stdout, ", skipped %d", skipped)
		}
		fmt.Fprintln(stdout)
		return nil
	})
}

// writeImported writes every cookie through s with its remaining lifetime.
// Cookies s refuses are skipped with a warning.
func writeImported(s *cookiestore.Store, cookies []browser.Cookie, l logger.Logger) (imported, skipped int) {
	p := mpb.New(mpb.WithOutput(stdout), mpb.WithWidth(40))
	bar := common.InitImportBar(p, "Importing", int64(len(cookies)))
	for _, c := range cookies {
		expiry := cookiestore.NoExpiry()
		if !c.Session() {
			expiry = cookiestore.Until(c.Expiry, now())
		}
		if err := s.Write(c.Name, c.Value, expiry); err != nil {
			l.Warning("import: skipping %s from %s: %v", c.Name, c.Domain, err)
			skipped++
		} else {
			imported++
		}
		bar.Increment()
	}
	p.Wait()
	return imported, skipped
}

func export(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return common.PrintErrWithCmdHelp(ctx, errors.New("export takes an output PATH"))
	}
	host := ctx.GlobalString("domain")
	return withStore(ctx, "export", func(_ *cookiestore.Store, jar cookieJar, _ logger.Logger) error {
		cookies, err := jar.Cookies()
		if err != nil {
			return runtimeErr(ctx, "export", "cookies", err)
		}
		entries := make([]browser.Cookie, len(cookies))
		for i, c := range cookies {
			entries[i] = browser.Cookie{
				Name:   c.Name,
				Value:  c.Value,
				Domain: host,
				Path:   c.Path,
				Expiry: c.Expires,
			}
		}
		f, err := appFs.Create(ctx.Args().First())
		if err != nil {
			return runtimeErr(ctx, "export", "create", err)
		}
		err = browser.EncodeNetscape(f, entries)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return runtimeErr(ctx, "export", "write", err)
		}
		fmt.Fprintf(stdout, "Exported %d cookie(s) to %s\n", len(entries), ctx.Args().First())
		return nil
	})
}
