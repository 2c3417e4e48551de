// Package config loads the restguard proxy configuration from a YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"

	"github.com/always-cache/restguard/pkg/namespace"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables overriding the file, e.g.
// RESTGUARD_ORIGIN or RESTGUARD_REST_PREFIX.
const EnvPrefix = "RESTGUARD"

var (
	ErrNoOrigin    = errors.New("origin not specified")
	ErrInvalidPort = errors.New("port must be between 1 and 65535")
)

type Config struct {
	// Port to listen on.
	Port int `yaml:"port" envconfig:"PORT"`
	// Origin URL to proxy to (overrides addr and host).
	Origin string `yaml:"origin" envconfig:"ORIGIN"`
	// Origin IP address to proxy to over HTTPS.
	Addr string `yaml:"addr" envconfig:"ADDR"`
	// Hostname of the origin, used with addr.
	Host string `yaml:"host" envconfig:"HOST"`
	// URL prefix of the REST API.
	RESTPrefix string `yaml:"restPrefix" envconfig:"REST_PREFIX"`
	// Log blocked override attempts.
	Debug bool `yaml:"debug" envconfig:"DEBUG"`
	// Tag of the blocked attempt log line.
	LogTag string `yaml:"logTag" envconfig:"LOG_TAG"`
	// Send the host's no-cache headers on API responses.
	ForceNoCache *bool `yaml:"forceNoCache" envconfig:"FORCE_NO_CACHE"`
	// Attempt database file ("memory" for in-memory, empty to disable).
	AuditDB string `yaml:"auditDb" envconfig:"AUDIT_DB"`
	// Listen address of the admin API, empty to disable.
	AdminAddr string `yaml:"adminAddr" envconfig:"ADMIN_ADDR"`
	// Log level name.
	LogLevel string `yaml:"logLevel" envconfig:"LOG_LEVEL"`
	// Log file to use in addition to stdout.
	LogFile string `yaml:"logFile" envconfig:"LOG_FILE"`
	// Additional API namespaces.
	Namespaces namespace.Rules `yaml:"namespaces" ignored:"true"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		Port:     8080,
		LogLevel: "debug",
	}
}

// Load reads the YAML file (if filename is not empty) on top of the defaults,
// then applies environment variable overrides.
func Load(filename string) (Config, error) {
	config := Default()
	if filename != "" {
		configBytes, err := os.ReadFile(filename)
		if err != nil {
			return config, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(configBytes, &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", filename, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return config, fmt.Errorf("process env: %w", err)
	}
	return config, nil
}

// NoCacheHeaders reports whether the no-cache header set is sent, defaulting to true.
func (c Config) NoCacheHeaders() bool {
	return c.ForceNoCache == nil || *c.ForceNoCache
}

// OriginURL returns the origin to proxy to, along with the hostname to use for
// it (empty if the URL host should be used).
func (c Config) OriginURL() (*url.URL, string, error) {
	if c.Origin != "" {
		u, err := url.Parse(c.Origin)
		if err != nil {
			return nil, "", fmt.Errorf("parse origin: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, "", fmt.Errorf("origin %q must be an absolute URL", c.Origin)
		}
		return u, "", nil
	}
	if c.Addr != "" {
		u, err := url.Parse("https://" + c.Addr)
		if err != nil {
			return nil, "", fmt.Errorf("parse addr: %w", err)
		}
		return u, c.Host, nil
	}
	return nil, "", ErrNoOrigin
}

// Validate checks that the proxy can be started with this configuration.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	_, _, err := c.OriginURL()
	return err
}
