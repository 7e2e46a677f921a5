// Package errors provides the typed error values returned by the provider
// registry. Every failure carries a machine-readable ErrorCode so bootstrap
// code can decide whether to abort startup or fall back.
package errors
