package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderAzure = "azure"
	ProviderEcho  = "echo"
)

var (
	ErrMissingEndpoint = errors.New("azure endpoint is not set (AZURE_OPENAI_ENDPOINT)")
	ErrUnknownProvider = errors.New("unknown provider")
)

type Config struct {
	Address      string      `mapstructure:"address"`
	Provider     string      `mapstructure:"provider"`
	TelemetryURL string      `mapstructure:"telemetry_url"`
	Azure        AzureConfig `mapstructure:"azure"`
	Log          LogConfig   `mapstructure:"log"`
}

// AzureConfig describes the Azure OpenAI deployment the form talks to.
type AzureConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	APIVersion string `mapstructure:"api_version"`
	Model      string `mapstructure:"model"`
	Scope      string `mapstructure:"scope"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("address", "0.0.0.0:5001")
	v.SetDefault("provider", ProviderAzure)
	v.SetDefault("telemetry_url", "")
	v.SetDefault("azure.endpoint", "")
	v.SetDefault("azure.api_version", "2024-12-01-preview")
	v.SetDefault("azure.model", "gpt-4.1")
	v.SetDefault("azure.scope", "https://cognitiveservices.azure.com/.default")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads config.yaml (optional), CHATFORM_* variables and
// AZURE_OPENAI_ENDPOINT. A non-empty path must point at an existing file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// allow environment variables like CHATFORM_LOG_LEVEL
	v.SetEnvPrefix("CHATFORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("azure.endpoint", "AZURE_OPENAI_ENDPOINT"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// don't fail if the default config file is missing, allow env-only config
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects configurations the process must not start with.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderAzure:
		if strings.TrimSpace(c.Azure.Endpoint) == "" {
			return ErrMissingEndpoint
		}
	case ProviderEcho:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}
