package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/aretw0/dictshape/internal/logging"
	"github.com/aretw0/dictshape/pkg/merge"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides (e.g. DICTSHAPE_LOG_LEVEL).
const EnvPrefix = "DICTSHAPE"

// DefaultFile is looked up in the working directory when --config is not set.
const DefaultFile = "dictshape.yaml"

// ErrInvalidConfig wraps every validation failure from Config.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Output formats.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

// Config holds all settings for a CLI run.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Output  string        `mapstructure:"output" default:"text"`
	Merge   MergeConfig   `mapstructure:"merge"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LogConfig configures the slog logger.
type LogConfig struct {
	Level  string `mapstructure:"level" default:"info"`
	Format string `mapstructure:"format" default:"text"`
}

// MergeConfig configures the merge command.
type MergeConfig struct {
	Strategy string `mapstructure:"strategy" default:"ordered"`
}

// MetricsConfig configures the metrics textfile export. An empty File
// disables it.
type MetricsConfig struct {
	File string `mapstructure:"file" default:""`
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"log-level":    "log.level",
	"log-format":   "log.format",
	"output":       "output",
	"strategy":     "merge.strategy",
	"metrics-file": "metrics.file",
}

// Load builds the configuration for a run rooted at dir.
//
// Sources, lowest precedence first: struct defaults, config file
// (--config or dir/dictshape.yaml), environment (after loading dir/.env),
// then flags that were explicitly set.
func Load(dir string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is fine; a malformed one is not.
	if err := godotenv.Overload(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	file, explicit := configFile(dir, flags)
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", file, err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFile(dir string, flags *pflag.FlagSet) (string, bool) {
	if flags != nil {
		if path, err := flags.GetString("config"); err == nil && path != "" {
			return path, true
		}
	}
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, false
}

// normalize lowercases the enumerated settings so callers can compare them
// against the exported constants directly.
func (c *Config) normalize() {
	for _, s := range []*string{&c.Log.Level, &c.Log.Format, &c.Output, &c.Merge.Strategy} {
		*s = strings.ToLower(strings.TrimSpace(*s))
	}
}

// Validate checks every enumerated setting. Names are matched without regard
// to case or surrounding space.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(strings.TrimSpace(c.Log.Format))) {
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	if !slices.Contains([]string{OutputText, OutputJSON, OutputMarkdown}, strings.ToLower(strings.TrimSpace(c.Output))) {
		return fmt.Errorf("%w: output %q (want text, json or markdown)", ErrInvalidConfig, c.Output)
	}
	if _, err := merge.ParseStrategy(c.Merge.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// bindValues walks the struct and registers a default for every
// mapstructure key so that AutomaticEnv can see it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
