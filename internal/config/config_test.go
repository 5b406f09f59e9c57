package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		expected Config
	}{
		{
			name: "json with all fields",
			file: "effectschema.json",
			content: `{
  "schema": "./models.gql",
  "output": "./src/generated",
  "target": "javascript",
  "disable": true,
  "workers": 4
}`,
			expected: Config{Schema: "./models.gql", Output: "./src/generated", Target: "javascript", Disable: true, Workers: 4},
		},
		{
			name:     "json with defaults",
			file:     "effectschema.json",
			content:  `{}`,
			expected: Config{Schema: DefaultSchema, Output: DefaultOutput, Target: DefaultTarget},
		},
		{
			name: "yaml",
			file: "effectschema.yaml",
			content: `schema: ./db.gql
output: ./out
`,
			expected: Config{Schema: "./db.gql", Output: "./out", Target: DefaultTarget},
		},
		{
			name:     "yml extension",
			file:     "effectschema.yml",
			content:  "target: ts\n",
			expected: Config{Schema: DefaultSchema, Output: DefaultOutput, Target: "ts"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(configPath, []byte(tt.content), 0644))

			got, err := LoadConfigFromPath(configPath)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestLoadConfigFromPath_Errors(t *testing.T) {
	// Test: Missing file
	_, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	// Test: Invalid JSON
	path := filepath.Join(t.TempDir(), "effectschema.json")
	require.NoError(t, os.WriteFile(path, []byte("{invalid"), 0644))
	_, err = LoadConfigFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")

	// Test: Invalid YAML
	path = filepath.Join(t.TempDir(), "effectschema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: [unterminated"), 0644))
	_, err = LoadConfigFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigFromDir(t *testing.T) {
	// Test: the config is found in a parent directory
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "effectschema.json"), []byte(`{"output":"./gen"}`), 0644))

	cfg, dir, err := loadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, dir)
	assert.Equal(t, "./gen", cfg.Output)
}

func TestLoadConfigFromDir_PrefersJSON(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "effectschema.json"), []byte(`{"output":"./json"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "effectschema.yaml"), []byte("output: ./yaml\n"), 0644))

	cfg, _, err := loadConfigFromDir(root)
	require.NoError(t, err)
	assert.Equal(t, "./json", cfg.Output)
}

func TestLoadConfigFromDir_NotFound(t *testing.T) {
	_, _, err := loadConfigFromDir(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestResolve(t *testing.T) {
	// Test: no config file falls back to defaults rooted at the directory
	dir := t.TempDir()
	t.Setenv(EnvDisable, "")
	t.Setenv(EnvOutput, "")

	cfg, root, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
	assert.Equal(t, Default(), cfg)
}

func TestResolve_DotEnv(t *testing.T) {
	// Test: .env values apply, but variables already set in the
	// environment win
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EFFECT_SCHEMA_OUTPUT=./from-dotenv\nDISABLE_EFFECT_SCHEMA=true\n"), 0644))
	t.Setenv(EnvOutput, "./from-env")
	// Registers cleanup for the variable godotenv is about to set
	t.Setenv(EnvDisable, "")
	require.NoError(t, os.Unsetenv(EnvDisable))

	cfg, _, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "./from-env", cfg.Output)
	assert.True(t, cfg.Disable)
}

func TestApplyEnv(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		}
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{EnvDisable: "1", EnvOutput: "/tmp/out"})))
	assert.True(t, cfg.Disable)
	assert.Equal(t, "/tmp/out", cfg.Output)

	cfg = Default()
	cfg.Disable = true
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{EnvDisable: "false"})))
	assert.False(t, cfg.Disable)

	// Empty values are ignored
	cfg = Default()
	require.NoError(t, cfg.ApplyEnv(env(map[string]string{EnvOutput: ""})))
	assert.Equal(t, DefaultOutput, cfg.Output)

	cfg = Default()
	err := cfg.ApplyEnv(env(map[string]string{EnvDisable: "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvDisable)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		errContains string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"javascript target", func(c *Config) { c.Target = "js" }, ""},
		{"empty schema", func(c *Config) { c.Schema = " " }, "schema path is required"},
		{"empty output", func(c *Config) { c.Output = "" }, "output directory is required"},
		{"current directory output", func(c *Config) { c.Output = "." }, "must name a directory of its own"},
		{"parent directory output", func(c *Config) { c.Output = "../" }, "must name a directory of its own"},
		{"root output", func(c *Config) { c.Output = "/" }, "invalid output directory"},
		{"unknown target", func(c *Config) { c.Target = "python" }, `unknown target "python"`},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := &Config{Schema: "./schema.gql", Output: "/abs/out"}
	assert.Equal(t, filepath.Join("/project", "schema.gql"), cfg.SchemaPath("/project"))
	assert.Equal(t, "/abs/out", cfg.OutputPath("/project"))
}

func TestEncode(t *testing.T) {
	// Test: an encoded config loads back unchanged
	path := filepath.Join(t.TempDir(), "effectschema.json")
	cfg := &Config{Schema: "./s.gql", Output: "./o", Target: "javascript", Workers: 2}

	data, err := cfg.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "disable")
	require.NoError(t, os.WriteFile(path, data, 0644))

	got, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
