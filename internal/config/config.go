// Package config loads arduscan settings from defaults, an optional YAML
// config file, ARDUSCAN_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

const (
	// AppName is the application name.
	AppName = "arduscan"
	// EnvPrefix prefixes every environment variable override.
	EnvPrefix = "ARDUSCAN"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
)

// Output formats.
const (
	FormatReport = "report"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// ErrConfigNotFound is returned when an explicit config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// Config is the resolved application configuration.
type Config struct {
	BaseDir         string              `mapstructure:"base_dir"`
	LogLevel        string              `mapstructure:"log_level"`
	Format          string              `mapstructure:"format"`
	MatchedOnly     bool                `mapstructure:"matched_only"`
	NoPorts         bool                `mapstructure:"no_ports"`
	WebPort         int                 `mapstructure:"web_port"`
	Variants        map[string][]string `mapstructure:"variants"`
	ToolchainTokens []string            `mapstructure:"toolchain_tokens"`
}

// LoadOptions control where configuration comes from.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is used exclusively.
	ConfigFilePath string
	// ConfigDirPath overrides the platform config directory.
	ConfigDirPath string
	// Flags are bound over every other source when set.
	Flags *pflag.FlagSet
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Format:   FormatReport,
		WebPort:  8080,
	}
}

// Dir returns the platform config directory for arduscan.
func Dir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, AppName), nil
}

// Load resolves the configuration. A missing default config file is fine;
// a missing explicit one is an error.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("base_dir", defaults.BaseDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("matched_only", defaults.MatchedOnly)
	v.SetDefault("no_ports", defaults.NoPorts)
	v.SetDefault("web_port", defaults.WebPort)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		if !model.IsFile(opts.ConfigFilePath) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			d, err := Dir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config in %s: %w", dir, err)
			}
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := defaults
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	switch cfg.Format {
	case FormatReport, FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q (want report, json or yaml)", cfg.Format)
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	return &cfg, nil
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"matched-only": "matched_only",
	"no-ports":     "no_ports",
	"port":         "web_port",
	"log-level":    "log_level",
	"format":       "format",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Catalog applies the configured table overrides to base.
func (c *Config) Catalog(base *catalog.Catalog) *catalog.Catalog {
	cat := base
	if len(c.Variants) > 0 {
		cat = cat.WithVariants(c.Variants)
	}
	if len(c.ToolchainTokens) > 0 {
		cat = cat.WithToolchainTokens(c.ToolchainTokens)
	}
	return cat
}

// Level returns the configured log level.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
