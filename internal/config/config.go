// Package config resolves itemstore CLI settings.
//
// Precedence, highest first: command-line flags, ITEMSTORE_* environment
// variables, the optional YAML config file, built-in defaults.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/roach88/itemstore/internal/record"
)

// EnvPrefix prefixes environment variables (ITEMSTORE_FORMAT, ...).
const EnvPrefix = "ITEMSTORE"

// Configuration keys.
const (
	KeyFormat     = "format"
	KeyVerbose    = "verbose"
	KeySeed       = "seed"
	KeyIDStrategy = "id_strategy"
)

// ID strategies.
const (
	IDStrategyUUID     = "uuid"
	IDStrategyUUIDv7   = "uuidv7"
	IDStrategySequence = "sequence"
)

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// ValidIDStrategies lists the accepted id strategies.
var ValidIDStrategies = []string{IDStrategyUUID, IDStrategyUUIDv7, IDStrategySequence}

// Config is the resolved CLI configuration.
type Config struct {
	Format     string `mapstructure:"format"`
	Verbose    bool   `mapstructure:"verbose"`
	Seed       string `mapstructure:"seed"`
	IDStrategy string `mapstructure:"id_strategy"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyFormat, "text")
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeySeed, "")
	v.SetDefault(KeyIDStrategy, IDStrategyUUID)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds flags to configuration keys. Flag names use dashes
// ("id-strategy") where keys use underscores ("id_strategy"). Flags that
// are not defined on fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, key := range []string{KeyFormat, KeyVerbose, KeySeed, KeyIDStrategy} {
		flag := fs.Lookup(strings.ReplaceAll(key, "_", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load reads the optional config file at path and resolves a Config.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		Format:     v.GetString(KeyFormat),
		Verbose:    v.GetBool(KeyVerbose),
		Seed:       v.GetString(KeySeed),
		IDStrategy: v.GetString(KeyIDStrategy),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	if !contains(ValidFormats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !contains(ValidIDStrategies, c.IDStrategy) {
		return fmt.Errorf("invalid id strategy %q: must be one of %v", c.IDStrategy, ValidIDStrategies)
	}
	return nil
}

// IDGenerator returns the record ID generator for the configured strategy.
func (c Config) IDGenerator() record.IDGenerator {
	switch c.IDStrategy {
	case IDStrategySequence:
		return record.NewSequenceGenerator("item-")
	case IDStrategyUUIDv7:
		return record.UUIDv7Generator{}
	default:
		return record.UUIDGenerator{}
	}
}

// Logger returns a text logger writing to w. Verbose enables debug level.
func (c Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
