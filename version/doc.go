// Package version carries the chatkit build version and the default
// User-Agent string derived from it.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/chatkit/version.Version=1.2.0"
package version
