// Package config loads keycheck CLI settings from defaults, an optional YAML
// file, KEYCHECK_* environment variables and command-line flags, in rising
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sara-star-quant/quantum-keycheck/internal/constants"
)

// Config keys.
const (
	KeyScheme      = "scheme"
	KeyEncoding    = "encoding"
	KeyConcurrency = "concurrency"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyTracing     = "tracing"
)

// Tracing exporters.
const (
	TracingNone   = "none"
	TracingStdout = "stdout"
)

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"scheme":      KeyScheme,
	"encoding":    KeyEncoding,
	"concurrency": KeyConcurrency,
	"log-level":   KeyLogLevel,
	"log-format":  KeyLogFormat,
	"tracing":     KeyTracing,
}

// Config is the resolved CLI configuration.
type Config struct {
	Scheme      string    `mapstructure:"scheme"`
	Encoding    string    `mapstructure:"encoding" validate:"oneof=auto raw hex base64 pem"`
	Concurrency int       `mapstructure:"concurrency" validate:"gte=0,lte=1024"`
	Log         LogConfig `mapstructure:"log"`
	Tracing     string    `mapstructure:"tracing" validate:"oneof=none stdout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error silent off none"`
	Format string `mapstructure:"format" validate:"oneof=text console json"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyScheme, "")
	v.SetDefault(KeyEncoding, "auto")
	v.SetDefault(KeyConcurrency, 0)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "text")
	v.SetDefault(KeyTracing, TracingNone)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds the config flags present in fs.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// DefaultPath returns $XDG_CONFIG_HOME/keycheck/config.yaml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keycheck", "config.yaml")
}

// ReadFile merges a YAML config file into v. An explicit path must exist;
// with an empty path the default location is read if present.
func ReadFile(v *viper.Viper, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

var validate = validator.New()

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Encoding = strings.ToLower(strings.TrimSpace(cfg.Encoding))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	cfg.Tracing = strings.ToLower(strings.TrimSpace(cfg.Tracing))
	cfg.Scheme = strings.TrimSpace(cfg.Scheme)

	if err := validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			var result error
			for _, fe := range verrs {
				result = multierror.Append(result,
					fmt.Errorf("%s: %v is not valid (%s %s)", fieldKey(fe.Namespace()), fe.Value(), fe.Tag(), fe.Param()))
			}
			return nil, fmt.Errorf("invalid configuration: %w", result)
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// fieldKey turns "Config.Log.Level" into "log.level".
func fieldKey(ns string) string {
	return strings.ToLower(strings.TrimPrefix(ns, "Config."))
}
