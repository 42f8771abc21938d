package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

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
		listFlags   commands.FlagsList
		showVersion bool
	)

	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "lspath",
		Usage:                 "print the entries of a PATH-like environment variable, one per line",
		ArgsUsage:             "[VARIABLE]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "list the entries (the default action)",
			},
			&cli.StringFlag{
				Name:        "filter",
				Aliases:     []string{"f"},
				Usage:       "boolean expression selecting entries (variables: entry, index, exists)",
				Sources:     envvars("FILTER"),
				Destination: &listFlags.Filter,
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

			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("config", flags.ConfigFilePath).
				Msg("global flags")

			return ctx, nil
		},
		OnUsageError: func(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
			return err
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

			// the command line wins over the config file
			if cfg.LogLevel != "" && !c.IsSet("log-level") {
				level, err := zerolog.ParseLevel(cfg.LogLevel)
				if err != nil {
					return fmt.Errorf("failed to parse log level: %w", err)
				}
				log.Logger = log.Level(level)
			}

			listFlags.Variable = c.Args().First()

			return commands.NewController(flags, cfg).List(ctx, listFlags)
		},
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		printer.Ctx(ctx).FatalError(err)
		writer.Discard()
		exitCode = 1
	}

	if err := writer.Flush(); err != nil {
		panic(err)
	}
	os.Exit(exitCode)
}
