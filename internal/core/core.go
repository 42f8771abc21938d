// Package core holds the shared configuration surface for the pathkit tools.
package core

import "errors"

// EnvPrefix namespaces all environment variables read by the tools.
const EnvPrefix = "PATHKIT_"

// ErrUsage marks command-line usage errors so entrypoints can map them to
// their documented exit codes.
var ErrUsage = errors.New("usage error")

type Flags struct {
	LogLevel       string
	ConfigFilePath string
}
