package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/pathkit/internal/commands"
	"github.com/hay-kot/pathkit/internal/core"
	"github.com/hay-kot/pathkit/pkgs/cll"
	"github.com/hay-kot/pathkit/pkgs/printer"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "v0.1.0-develop"
	commit  = "HEAD"
	date    = time.Now().Format(time.DateTime)
)

var envvars = cll.EnvWithPrefix(core.EnvPrefix)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// exit code 3 for usage errors, 1 for everything else
func exitCodeFor(err error) int {
	if errors.Is(err, core.ErrUsage) {
		return 3
	}
	return 1
}

func main() {
	flags := &core.Flags{}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		ctx    = context.Background()
		writer = printer.NewDeferedWriter(os.Stdout)
	)

	ctx = printer.WithWriter(ctx, writer)
	printer.ConsolePrinter = printer.Ctx(ctx)

	var (
		canonFlags  commands.FlagsCanon
		quiet       bool
		debug       bool
		showVersion bool
	)

	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "canonpath",
		Usage:                 "resolve a path to its canonical absolute form, following symlinks",
		ArgsUsage:             "PATH",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "quiet",
				Aliases:     []string{"q"},
				Usage:       "suppress the advisory note when delegating to a system utility",
				Destination: &quiet,
			},
			&cli.BoolFlag{
				Name:        "test",
				Aliases:     []string{"t"},
				Usage:       "force the built-in resolver even if a system utility is available",
				Destination: &canonFlags.Test,
			},
			&cli.BoolFlag{
				Name:        "noexec",
				Aliases:     []string{"X"},
				Usage:       "print the equivalent external command instead of invoking it",
				Destination: &canonFlags.NoExec,
			},
			&cli.BoolFlag{
				Name:        "debug",
				Aliases:     []string{"d"},
				Usage:       "trace each resolution step",
				Destination: &debug,
			},
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"V"},
				Usage:       "print version information and exit",
				Destination: &showVersion,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "set the logging verbosity level",
				Value:       "info",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the pathkit configuration file",
				Required:    false,
				Value:       core.DefaultConfigPath(),
				Sources:     envvars("CONFIG_PATH"),
				Destination: &flags.ConfigFilePath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			// --debug and --quiet take precedence over --log-level
			switch {
			case debug:
				level = zerolog.DebugLevel
			case quiet:
				level = zerolog.WarnLevel
			}

			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("config", flags.ConfigFilePath).
				Bool("quiet", quiet).
				Msg("global flags")

			return ctx, nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return fmt.Errorf("%w: %s", core.ErrUsage, err)
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if showVersion {
				printer.Ctx(ctx).Line(build())
				return nil
			}

			cfg, err := core.LoadConfig(flags.ConfigFilePath)
			if err != nil {
				return err
			}

			// command-line verbosity flags win over the config file
			if cfg.LogLevel != "" && !c.IsSet("log-level") && !debug && !quiet {
				level, err := zerolog.ParseLevel(cfg.LogLevel)
				if err != nil {
					return fmt.Errorf("failed to parse log level: %w", err)
				}
				log.Logger = log.Level(level)
			}
			if cfg.Quiet && !debug && !c.IsSet("log-level") {
				log.Logger = log.Level(zerolog.WarnLevel)
			}

			canonFlags.Path = c.Args().First()
			if canonFlags.Path == "" {
				canonFlags.Path, err = promptForPath()
				if err != nil {
					return err
				}
			}

			return commands.NewController(flags, cfg).Canonicalize(ctx, canonFlags)
		},
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.Ctx(ctx).FatalError(err)
		writer.Discard()
		exitCode = exitCodeFor(err)
	}

	if err := writer.Flush(); err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}

// promptForPath asks for the path interactively when none was given on the
// command line. Outside a terminal that is a plain usage error.
func promptForPath() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("%w: missing path operand", core.ErrUsage)
	}

	var path string

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Path to canonicalize").
			Value(&path).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("a path is required")
				}
				return nil
			}),
	))

	if err := form.Run(); err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}
