package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
)

// Homepage is advertised in the default User-Agent header.
const Homepage = "https://github.com/kbukum/chatkit"

// Commit returns the short commit hash, from -ldflags or from the VCS
// stamp embedded by the go tool. Empty when neither is available.
func Commit() string {
	commit := GitCommit
	if commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return commit
}

// Short returns "<version>" or "<version>-<commit>".
func Short() string {
	if c := Commit(); c != "" {
		return Version + "-" + c
	}
	return Version
}

// UserAgent returns the default User-Agent header value, in the
// "name (url, version)" form chat APIs expect from bot clients.
func UserAgent() string {
	return fmt.Sprintf("chatkit (%s, %s)", Homepage, Version)
}
