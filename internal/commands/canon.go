package commands

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/pathkit/internal/resolver"
	"github.com/hay-kot/pathkit/pkgs/printer"
)

type FlagsCanon struct {
	Path   string // path to canonicalize
	Test   bool   // force the built-in resolver
	NoExec bool   // print the equivalent external command instead of running it
}

// Canonicalize resolves flags.Path to its canonical absolute form and
// prints it. When a system canonicalization utility is discoverable (and
// Test is unset) it is preferred over the built-in algorithm; an advisory
// note about the delegation goes to stderr at info level, so --quiet
// suppresses it.
func (c *Controller) Canonicalize(ctx context.Context, flags FlagsCanon) error {
	out := printer.Ctx(ctx)

	if !flags.Test {
		if sys, ok := resolver.DiscoverSystem(c.Config.Resolver.Tool); ok {
			if flags.NoExec {
				out.Line(sys.Command(flags.Path))
				return nil
			}

			log.Info().Str("tool", sys.Tool).Msg("delegating to system canonicalizer")

			resolved, err := sys.Canonicalize(ctx, flags.Path)
			if err != nil {
				return err
			}

			out.Line(resolved)
			return nil
		}

		log.Debug().Msg("no system canonicalizer found, using built-in resolver")
	}

	r := resolver.NewWithDepth(c.Config.Resolver.MaxDepth)
	resolved, err := r.Resolve(flags.Path)
	if err != nil {
		return err
	}

	out.Line(resolved)
	return nil
}
