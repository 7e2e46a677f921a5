// Package config loads service configuration with Viper.
//
// LoadConfig searches for config.yml and .env files in standard locations,
// then lets PREFIX_* environment variables override file values. The
// registry section carries provider selections:
//
//	name: blog-svc
//	environment: staging
//	registry:
//	  strict: true
//	  selections:
//	    BlogProvider: Memory
//
// Usage:
//
//	cfg, err := config.Load("blog-svc")
//	reg := cfg.NewRegistry()
//	blog.Register(reg)
//	blog.RegisterMemory(reg)
//	err = cfg.ApplyRegistry(reg)
package config
