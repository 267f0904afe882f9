// In file: cmd/assistant/version.go
package main

import (
	"fmt"
	"runtime"
)

// Build metadata injected via -ldflags at release time. The defaults identify
// a local development build.
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// BuildInfo describes the running binary. It is logged at startup and served
// by the health endpoint so a deployed instance can always be identified.
type BuildInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// Summary renders the one-line form used in the startup log.
func (b BuildInfo) Summary() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s, %s)",
		b.Version, b.GitCommit, b.BuildDate, b.GoVersion, b.Platform)
}
