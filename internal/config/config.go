// Package config loads ls-skydome settings.
//
// Values are resolved in order, later sources overriding earlier ones:
//
//	built-in defaults -> YAML file -> .env file -> environment (SKYDOME_*)
//
// The merged result is validated with struct tags and then by each
// component's own Validate method.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-skydome/internal/astro"
	"github.com/litescript/ls-skydome/internal/gradient"
	"github.com/litescript/ls-skydome/internal/render"
	"github.com/litescript/ls-skydome/internal/starfield"
)

// EnvPrefix prefixes every environment variable, e.g. SKYDOME_OBSERVER_LAT_DEG.
// Leaf keys never fall back to unprefixed names.
const EnvPrefix = "SKYDOME"

// Config is the complete application configuration.
type Config struct {
	LogLevel string `yaml:"log_level" split_words:"true" validate:"oneof=debug info warn warning error"`

	// Refresh is the TUI frame interval.
	Refresh time.Duration `yaml:"refresh" validate:"gte=10ms"`

	// TimeScale multiplies wall-clock progress for the sky clock; 1 is real time.
	TimeScale float64 `yaml:"time_scale" split_words:"true" validate:"gt=0"`

	Observer  astro.Observer         `yaml:"observer" envconfig:"OBSERVER"`
	Catalog   CatalogConfig          `yaml:"catalog" envconfig:"CATALOG"`
	Field     starfield.FieldOptions `yaml:"field" envconfig:"FIELD"`
	Starfield starfield.Config       `yaml:"starfield" envconfig:"STARFIELD"`
	Gradient  gradient.Windows       `yaml:"gradient_windows" ignored:"true"`
	Render    render.Options         `yaml:"render" envconfig:"RENDER"`
}

// CatalogConfig selects the named-star catalog.
type CatalogConfig struct {
	// Path to a catalog file; empty uses the built-in bright star list.
	Path string `yaml:"path"`
	// MaxMagnitude drops fainter named stars.
	MaxMagnitude float64 `yaml:"max_magnitude" split_words:"true"`
	// Seed drives twinkle phases of named stars.
	Seed uint32 `yaml:"seed"`
}

// Default returns the built-in configuration: Greenwich observer, reference
// projection tuning and gradient windows.
func Default() Config {
	return Config{
		LogLevel:  "info",
		Refresh:   100 * time.Millisecond,
		TimeScale: 1,
		Observer:  astro.Observer{LatDeg: 51.4769, LonDeg: -0.0005, Name: "Greenwich"},
		Catalog:   CatalogConfig{MaxMagnitude: 6.5, Seed: 7},
		Field:     starfield.DefaultFieldOptions(),
		Starfield: starfield.DefaultConfig(),
		Gradient:  gradient.DefaultWindows(),
		Render:    render.DefaultOptions(),
	}
}

// Validate checks struct tags, then component invariants.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return &ConfigError{Type: ErrValidation, Message: "configuration validation failed", Err: err}
	}
	if err := c.Starfield.Validate(); err != nil {
		return &ConfigError{Type: ErrValidation, Message: "starfield tuning", Err: err}
	}
	if err := c.Gradient.Validate(); err != nil {
		return &ConfigError{Type: ErrValidation, Message: "gradient windows", Err: err}
	}
	return nil
}

// Options controls where Load looks for settings.
type Options struct {
	// Path is a YAML file. Empty skips the file stage; a set path that does not
	// exist is an error.
	Path string
	// DotEnv files are loaded into the process environment if present. They
	// never override variables that are already set.
	DotEnv []string
	// Prefix for environment variables; empty means EnvPrefix.
	Prefix string
}

// Load resolves a Config from the file at path, a .env in the working
// directory, and the SKYDOME_* environment.
func Load(path string) (*Config, error) {
	return LoadWith(Options{Path: path, DotEnv: []string{".env"}})
}

// LoadWith resolves a Config using opts.
func LoadWith(opts Options) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := readFile(opts.Path, &cfg); err != nil {
			return nil, err
		}
	}

	for _, f := range opts.DotEnv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Type: ErrFile, Message: "failed to load " + f, Err: err}
		}
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, &ConfigError{Type: ErrParsing, Message: "failed to process environment configuration", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return &ConfigError{Type: ErrFile, Message: "failed to open config file", Err: err}
	}
	defer f.Close()
	if err := Decode(f, cfg); err != nil {
		return err
	}
	return nil
}

// Decode overlays YAML from r onto cfg. Unknown keys are rejected; an empty
// document leaves cfg unchanged.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &ConfigError{Type: ErrParsing, Message: "failed to parse YAML", Err: err}
	}
	return nil
}

// Encode writes cfg as YAML.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// ConfigErrorType categorizes configuration failures.
type ConfigErrorType string

const (
	// ErrFile indicates a config or .env file could not be read.
	ErrFile ConfigErrorType = "FILE"
	// ErrParsing indicates a value could not be decoded into its field.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation indicates the merged configuration violates a rule.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load and Validate.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
