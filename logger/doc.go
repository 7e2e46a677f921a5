// Package logger provides structured logging for provkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers kept in a named registry.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("provider")
//	log.Info("provider registered", logger.Fields("provider", "memory"))
package logger
