package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/okra-platform/effectschema/internal/build"
	"github.com/okra-platform/effectschema/internal/codegen"
)

const (
	// DefaultSchema is the schema path used when none is configured
	DefaultSchema = "./schema.gql"
	// DefaultOutput is the output directory used when none is configured
	DefaultOutput = "./effect"
	// DefaultTarget is the printer used when none is configured
	DefaultTarget = "typescript"

	// EnvDisable turns generation off when set to a true value
	EnvDisable = "DISABLE_EFFECT_SCHEMA"
	// EnvOutput overrides the output directory
	EnvOutput = "EFFECT_SCHEMA_OUTPUT"
)

// FileNames are the config file names searched for, in order of preference
var FileNames = []string{"effectschema.json", "effectschema.yaml", "effectschema.yml"}

// ErrConfigNotFound is returned when no config file exists in a directory or its parents
var ErrConfigNotFound = errors.New("no effectschema config found")

// Config represents the effectschema.json configuration file
type Config struct {
	Schema  string `json:"schema" yaml:"schema"`
	Output  string `json:"output" yaml:"output"`
	Target  string `json:"target" yaml:"target"`
	Disable bool   `json:"disable,omitempty" yaml:"disable,omitempty"`
	Workers int    `json:"workers,omitempty" yaml:"workers,omitempty"`
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	if c.Schema == "" {
		c.Schema = DefaultSchema
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Target == "" {
		c.Target = DefaultTarget
	}
}

// Resolve loads the config for dir, falling back to defaults rooted at dir
// when no config file exists. The .env file in dir and the environment are
// applied on top.
func Resolve(dir string) (*Config, string, error) {
	cfg, root, err := loadConfigFromDir(dir)
	if errors.Is(err, ErrConfigNotFound) {
		cfg, root, err = Default(), dir, nil
	}
	if err != nil {
		return nil, "", err
	}

	if err := LoadDotEnv(dir); err != nil {
		return nil, "", err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, "", err
	}

	return cfg, root, nil
}

// LoadConfigFromPath loads a JSON or YAML config file, chosen by extension
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.setDefaults()
	return &config, nil
}

// loadConfigFromDir searches for a config file in the given directory and its parents
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		for _, name := range FileNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				config, err := LoadConfigFromPath(configPath)
				if err != nil {
					return nil, "", err
				}
				return config, dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("%w in %s or any parent directory", ErrConfigNotFound, startDir)
}

// LoadDotEnv loads dir/.env into the process environment. Variables that are
// already set win, and a missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDisable); ok && v != "" {
		disable, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvDisable, v, err)
		}
		c.Disable = disable
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	return nil
}

// Validate checks that the config can drive a run
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Schema) == "" {
		return fmt.Errorf("schema path is required")
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output directory is required")
	}
	if err := build.CheckOutput(c.Output); err != nil {
		return err
	}
	if !codegen.DefaultRegistry.Has(c.Target) {
		return fmt.Errorf("unknown target %q (available: %s)", c.Target, strings.Join(codegen.DefaultRegistry.Languages(), ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// SchemaPath returns the schema path resolved against root
func (c *Config) SchemaPath(root string) string {
	return resolve(root, c.Schema)
}

// OutputPath returns the output directory resolved against root
func (c *Config) OutputPath(root string) string {
	return resolve(root, c.Output)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// Encode returns the config as indented JSON, the format init writes
func (c *Config) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append(data, '\n'), nil
}
