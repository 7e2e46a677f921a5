package config

import (
	"fmt"

	"github.com/kbukum/provkit/logger"
	"github.com/kbukum/provkit/provider"
	"github.com/kbukum/provkit/validation"
)

// ServiceConfig is the configuration of a service hosting a provider registry.
// Projects extend it by embedding:
//
//	type MyConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Blog BlogConfig `yaml:"blog" mapstructure:"blog"`
//	}
type ServiceConfig struct {
	Name        string          `yaml:"name" mapstructure:"name" validate:"required,trimmed"`
	Environment string          `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string          `yaml:"version" mapstructure:"version"`
	Debug       bool            `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config   `yaml:"logging" mapstructure:"logging"`
	Registry    provider.Config `yaml:"registry" mapstructure:"registry"`
}

// ApplyDefaults applies default values to the base configuration.
// Override this in embedding structs and call c.ServiceConfig.ApplyDefaults() first.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate service name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	// Fail fast on bad selections outside development.
	if c.Environment == "production" {
		c.Registry.Strict = true
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the struct tags, then the logging section.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return nil
}

// Load reads, defaults and validates the ServiceConfig of serviceName.
func Load(serviceName string, opts ...LoaderOption) (*ServiceConfig, error) {
	var cfg ServiceConfig
	if err := LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = serviceName
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewRegistry creates a registry logging through the configured logger.
// Selections are applied separately with ApplyRegistry once providers are
// registered.
func (c *ServiceConfig) NewRegistry(opts ...provider.Option) *provider.Registry {
	log := logger.New(&c.Logging, c.Name).WithComponent("provider")
	return provider.New(append([]provider.Option{provider.WithLogger(log)}, opts...)...)
}

// ApplyRegistry applies the configured selections to r.
func (c *ServiceConfig) ApplyRegistry(r *provider.Registry) error {
	return r.Apply(c.Registry)
}
