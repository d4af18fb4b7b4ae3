// Package config loads crudjen settings from flags, the environment and an
// optional .crudjen.yaml, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kindred-app/crudjen/internal/bank"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. CRUDJEN_OUT_DIR.
	EnvPrefix = "CRUDJEN"

	// DefaultOutDir is where entity packages are written, matching the layout
	// of the backend the scaffolds target.
	DefaultOutDir = "backend/internal/handlers"

	fileName = ".crudjen"
)

// Keys of the settings, as used in the config file.
const (
	KeyOutDir     = "out_dir"
	KeyAPIPrefix  = "api_prefix"
	KeyImportBase = "import_base"
	KeyLogLevel   = "log_level"
)

// Config holds the resolved settings.
type Config struct {
	OutDir     string `mapstructure:"out_dir"`
	APIPrefix  string `mapstructure:"api_prefix"`
	ImportBase string `mapstructure:"import_base"`
	LogLevel   string `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment lookup set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyOutDir, DefaultOutDir)
	v.SetDefault(KeyAPIPrefix, bank.DefaultAPIPrefix)
	v.SetDefault(KeyImportBase, "")
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds the named flags of fs to config keys. Flags missing from fs
// are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for flag, key := range keys {
		f := fs.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// Load reads the config file and returns the resolved settings. An empty file
// means ./.crudjen.yaml, which may be absent; an explicit file must exist.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.OutDir == "" {
		return Config{}, errors.New("out_dir must not be empty")
	}
	return cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	return ParseLevel(c.LogLevel)
}

// ParseLevel maps a level name to a slog level. Unknown names yield Info and
// an error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (defaulting to INFO)", s)
	}
}
