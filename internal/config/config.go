// Package config loads and persists the timesleuth configuration from
// .timesleuth.yml with TIMESLEUTH_* environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration file is looked up by default.
const DefaultPath = ".timesleuth.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TIMESLEUTH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: TIMESLEUTH_PROVIDER -> provider, etc.
	// Nested keys use underscores doubled up: TIMESLEUTH_SERVER__PORT.
	if err := k.Load(env.Provider("TIMESLEUTH_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "TIMESLEUTH_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI: true,
	ProviderAzure:  true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, azure", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.Provider == ProviderAzure && (c.AzureEndpoint == "" || c.AzureDeployment == "") {
		return fmt.Errorf("azure provider requires azure_endpoint and azure_deployment")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.BillableRate < 0 {
		return fmt.Errorf("billable_rate must be non-negative")
	}

	if c.FirmSize < 0 {
		return fmt.Errorf("firm_size must be non-negative")
	}

	if c.RetentionDays < 0 {
		return fmt.Errorf("retention_days must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAzure:
		return "AZURE_OPENAI_API_KEY"
	default:
		return ""
	}
}
