package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	"github.com/ezdeploy/cookiestore/cmd/common"
	envs "github.com/ezdeploy/cookiestore/common"
	"github.com/ezdeploy/cookiestore/internal/jars"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var globalFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "jar, j",
		Usage:  "cookie jar: sqlite:PATH, file:PATH or memory: (default: sqlite jar in the config dir)",
		EnvVar: envs.JarEnv,
	},
	cli.StringFlag{
		Name:  "domain",
		Usage: "host the jar cookies belong to",
		Value: jars.DefaultHost,
	},
	cli.BoolFlag{
		Name:  "encrypt, e",
		Usage: "seal cookie values with the key from the OS keyring",
	},
	cli.BoolFlag{
		Name:   "debug, d",
		Usage:  "print debug logs to stderr",
		EnvVar: envs.DebugEnv,
	},
}

func Execute(args []string, bArgs BuildArgs) error {
	app := cli.App{
		Name:                  "cookiestore",
		HelpName:              "cookiestore",
		Usage:                 "A small browser-like cookie jar.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "cookiestore [global options] <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Flags:                 globalFlags,
		Commands: []cli.Command{
			{
				Name:               "set",
				Aliases:            []string{"s"},
				Usage:              "write a cookie",
				UsageText:          "set [--hours H] NAME VALUE",
				Description:        SetDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             set,
				Flags:              setFlags,
			},
			{
				Name:               "get",
				Aliases:            []string{"g"},
				Usage:              "print the value of a cookie",
				UsageText:          "get NAME",
				Description:        GetDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             get,
			},
			{
				Name:               "list",
				Aliases:            []string{"l"},
				Usage:              "print the jar",
				Description:        ListDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             list,
			},
			{
				Name:               "import",
				Aliases:            []string{"i"},
				Usage:              "import cookies from a browser or a cookie store file",
				UsageText:          "import [--domain D] [--browser NAME | PATH]",
				Description:        ImportDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             importCookies,
				Flags:              importFlags,
			},
			{
				Name:               "export",
				Usage:              "write the jar as a Netscape cookies.txt file",
				UsageText:          "export PATH",
				Description:        ExportDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             export,
			},
			{
				Name:               "end-session",
				Usage:              "remove session cookies",
				Description:        EndSessionDescription,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				OnUsageError:       common.UsageErrorCallback,
				Action:             endSession,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of cookiestore",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
