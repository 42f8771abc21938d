package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/pathkit/internal/pathvar"
	"github.com/hay-kot/pathkit/pkgs/printer"
)

type FlagsList struct {
	Variable string // environment variable to split
	Filter   string // optional boolean expression over entries
}

// List splits the named environment variable and prints each entry on its
// own line, in original order, empty segments included. An unset variable
// prints nothing and is not an error.
func (c *Controller) List(ctx context.Context, flags FlagsList) error {
	name := flags.Variable
	if name == "" {
		name = pathvar.DefaultVariable
	}

	filter, err := pathvar.CompileFilter(flags.Filter)
	if err != nil {
		return err
	}

	entries := pathvar.Lookup(name)
	log.Debug().Str("variable", name).Int("entries", len(entries)).Msg("split variable")

	out := printer.Ctx(ctx)
	for i, entry := range entries {
		match, err := filter.Match(entry, i)
		if err != nil {
			return err
		}
		if !match {
			log.Debug().Str("entry", entry).Int("index", i).Msg("filtered")
			continue
		}
		out.Line(entry)
	}

	return nil
}
