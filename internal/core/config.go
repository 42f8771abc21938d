package core

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// ConfigFile carries optional defaults for both tools. Every field has a
// usable zero value so running without a config file is the normal case.
type ConfigFile struct {
	LogLevel string         `yaml:"log_level"`
	Quiet    bool           `yaml:"quiet"`
	Resolver ResolverConfig `yaml:"resolver"`
}

type ResolverConfig struct {
	// Tool overrides discovery of the system canonicalization utility.
	Tool string `yaml:"tool"`
	// MaxDepth bounds symlink expansions during built-in resolution.
	MaxDepth int `yaml:"max_depth"`
}

// DefaultConfigPath returns the conventional config location under the
// user's config directory, or "" when that directory cannot be determined.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pathkit", "pathkit.yml")
}

// LoadConfig reads the YAML config at cfgpath. A missing file (or an empty
// cfgpath) yields the zero config; only unreadable or malformed files error.
func LoadConfig(cfgpath string) (ConfigFile, error) {
	cfg := ConfigFile{}

	if cfgpath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgpath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("config", cfgpath).Msg("no config file, using defaults")
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", cfgpath, err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", cfgpath, err)
	}

	log.Debug().Str("config", cfgpath).Msg("loaded config file")
	return cfg, nil
}
