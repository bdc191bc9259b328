package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"ion/util"

	"github.com/pelletier/go-toml"
)

// ConfigFileName is the name of the optional project file read from the
// directory of the compiled source file.
const ConfigFileName = "ion.toml"

// Config is the build configuration of a single compilation.
type Config struct {
	// Name is the project name.  It is informational only.
	Name string `toml:"name"`

	// Output is the path of the emitted file.  When empty it is derived from
	// the source file name.
	Output string `toml:"output"`

	// LogLevel is one of "silent", "error", "warn" or "verbose".
	LogLevel string `toml:"log-level"`

	// Emit is the kind of output to produce.  Only "llvm" is supported.
	Emit string `toml:"emit"`
}

// defaultConfig returns the configuration used when no project file exists.
func defaultConfig() *Config {
	return &Config{
		LogLevel: "verbose",
		Emit:     "llvm",
	}
}

var logLevelNames = []string{"silent", "error", "warn", "verbose"}

// LoadConfig loads the project file from dir.  A missing project file yields
// the default configuration.
func LoadConfig(dir string) (*Config, error) {
	cfg := defaultConfig()

	buff, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", ConfigFileName, err)
	}

	if err := toml.Unmarshal(buff, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", ConfigFileName, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}

	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Emit != "llvm" {
		return fmt.Errorf("unsupported emit kind `%s`", cfg.Emit)
	}

	if !util.Contains(logLevelNames, cfg.LogLevel) {
		return fmt.Errorf("unknown log level `%s`", cfg.LogLevel)
	}

	return nil
}

// OutputPath returns the path of the emitted file for the given source file.
func (cfg *Config) OutputPath(srcPath string) string {
	if cfg.Output != "" {
		return cfg.Output
	}

	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".ll"
}
