// Package buildinfo reports the version of the running omi binary.
package buildinfo

import (
	"bytes"
	"os/exec"
	"runtime/debug"
	"strings"
)

var (
	// Set at build time with -ldflags "-X 'github.com/OpenEnergyPlatform/omi/internal/buildinfo.Version=...'".
	Version = ""
	Commit  = ""
)

const (
	ToolName   = "omi"
	ToolVendor = "OpenEnergyPlatform"
	ToolURL    = "https://github.com/OpenEnergyPlatform/omi"
)

var (
	readBuildInfo = debug.ReadBuildInfo
	describe      = gitDescribe
)

// GetVersion resolves the version from ldflags, module build info, git or
// the commit, in that order.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	if d := describe(); d != "" {
		return d
	}
	if Commit != "" {
		return "commit-" + Commit
	}
	return "devel"
}

func gitDescribe() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		if short, err2 := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err2 == nil {
			return strings.TrimSpace(string(short))
		}
		return ""
	}
	return strings.TrimSpace(string(bytes.TrimSpace(out)))
}
