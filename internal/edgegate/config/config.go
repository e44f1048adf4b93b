// Package config holds the edgegate runtime configuration. Configuration is
// read from an optional TOML file and overridden from the environment, so a
// pre-provisioned exchange credential never has to live on disk.
package config

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// ConfigFormatVersion is the current version of the configuration file format.
const ConfigFormatVersion = "0.1.0"

// ExchangeConfig holds the remote exchange API configuration. The credential
// is a pre-provisioned "user:apikey" pair; the client scopes it with the
// organization when building the Basic authorization header.
type ExchangeConfig struct {
	URL        string `toml:"url" env:"EDGEGATE_EXCHANGE_URL"`
	Org        string `toml:"org" env:"EDGEGATE_EXCHANGE_ORG"`
	Credential string `toml:"credential" env:"EDGEGATE_EXCHANGE_CREDENTIAL"`
}

// GetExchangeURL returns the exchange base URL without a trailing slash.
func (e *ExchangeConfig) GetExchangeURL() string {
	return strings.TrimSuffix(e.URL, "/")
}

// GetOrg returns the organization identifier.
func (e *ExchangeConfig) GetOrg() string {
	return e.Org
}

// GetCredential returns the pre-provisioned exchange credential.
func (e *ExchangeConfig) GetCredential() string {
	return e.Credential
}

// ConfigParam holds all configuration parameters for the edgegate service.
type ConfigParam struct {
	FormatVersion string `toml:"format_version"`

	ServerHostName string `toml:"server_hostname" env:"EDGEGATE_HOSTNAME"`
	ServerPort     string `toml:"server_port" env:"EDGEGATE_PORT"`
	HandleCORS     bool   `toml:"handle_cors"`

	Exchange ExchangeConfig `toml:"exchange"`
}

var cfg *ConfigParam

// Config returns the current configuration.
func Config() *ConfigParam {
	return cfg
}

// LoadConfig loads configuration from the given file, applies environment
// overrides, and validates the result. The filename may be empty, in which
// case configuration comes from the environment alone.
func LoadConfig(filename string) error {
	c := &ConfigParam{
		FormatVersion: ConfigFormatVersion,
	}

	if filename != "" {
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("error reading config file: %v", err)
		}
		if _, err := toml.Decode(string(content), c); err != nil {
			return fmt.Errorf("error parsing config file: %v", err)
		}
	}

	if err := env.Parse(c); err != nil {
		return fmt.Errorf("error reading environment overrides: %v", err)
	}

	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	cfg = c
	return nil
}

// ValidateConfig checks that all required configuration values are present
// and applies defaults for optional ones.
func ValidateConfig(c *ConfigParam) error {
	if c.FormatVersion != ConfigFormatVersion {
		return fmt.Errorf("unsupported config file format version: %s", c.FormatVersion)
	}
	if c.ServerPort == "" {
		c.ServerPort = "8628"
	}
	if c.Exchange.URL == "" {
		return fmt.Errorf("exchange.url is required")
	}
	if c.Exchange.Org == "" {
		return fmt.Errorf("exchange.org is required")
	}
	if c.Exchange.Credential == "" {
		return fmt.Errorf("exchange.credential is required (EDGEGATE_EXCHANGE_CREDENTIAL)")
	}
	return nil
}

// TestInit installs an in-memory configuration for tests and restores the
// previous one on cleanup.
func TestInit(t *testing.T) {
	prev := cfg
	cfg = &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		ServerPort:    "8628",
		HandleCORS:    false,
		Exchange: ExchangeConfig{
			URL:        "http://127.0.0.1:3090/v1",
			Org:        "testorg",
			Credential: "testuser:testkey",
		},
	}
	t.Cleanup(func() {
		cfg = prev
	})
}
