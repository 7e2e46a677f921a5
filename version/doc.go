// Package version reports the build version of a registry service.
//
//	go build -ldflags "-X github.com/kbukum/provkit/version.Version=1.0.0"
package version
