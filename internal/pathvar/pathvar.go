// Package pathvar splits PATH-like environment variables into their
// component entries.
package pathvar

import (
	"os"
	"strings"
)

// DefaultVariable is the variable listed when no name is given.
const DefaultVariable = "PATH"

// Split breaks a list-separated value into entries, preserving original
// order and empty segments. An empty value has zero entries.
func Split(value string) []string {
	if value == "" {
		return nil
	}
	return strings.Split(value, string(os.PathListSeparator))
}

// Lookup splits the value of the named environment variable. An unset
// variable is treated as empty, not as an error.
func Lookup(name string) []string {
	value, ok := os.LookupEnv(name)
	if !ok {
		return nil
	}
	return Split(value)
}
