package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// System delegates canonicalization to a platform utility such as
// realpath(1) or readlink(1).
type System struct {
	// Tool is the absolute path of the utility.
	Tool string
	// Args are passed before the target path, e.g. ["-f"] for readlink.
	Args []string
}

var _ Canonicalizer = &System{}

// DiscoverSystem probes PATH for a native canonicalization utility,
// preferring realpath over readlink -f. A non-empty override skips the
// probe and is used verbatim if it can be located.
func DiscoverSystem(override string) (*System, bool) {
	if override != "" {
		tool, err := exec.LookPath(override)
		if err != nil {
			log.Debug().Str("tool", override).Err(err).Msg("configured canonicalizer not found")
			return nil, false
		}
		return &System{Tool: tool}, true
	}

	if tool, err := exec.LookPath("realpath"); err == nil {
		return &System{Tool: tool}, true
	}

	if tool, err := exec.LookPath("readlink"); err == nil {
		return &System{Tool: tool, Args: []string{"-f"}}, true
	}

	return nil, false
}

// Canonicalize implements Canonicalizer by running the utility and
// capturing its single line of output.
func (s *System) Canonicalize(ctx context.Context, path string) (string, error) {
	args := append(append([]string{}, s.Args...), path)
	cmd := exec.CommandContext(ctx, s.Tool, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug().Str("tool", s.Tool).Strs("args", args).Msg("invoking system canonicalizer")

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s failed: %s: %w", s.Tool, msg, err)
		}
		return "", fmt.Errorf("%s failed: %w", s.Tool, err)
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}

// Command renders the shell command Canonicalize would run, for callers
// that want to print it instead of executing it.
func (s *System) Command(path string) string {
	parts := append(append([]string{s.Tool}, s.Args...), path)
	return strings.Join(parts, " ")
}
