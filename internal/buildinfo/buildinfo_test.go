package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestGetVersion(t *testing.T) {
	origVersion, origCommit := Version, Commit
	origRead, origDescribe := readBuildInfo, describe
	t.Cleanup(func() {
		Version, Commit = origVersion, origCommit
		readBuildInfo, describe = origRead, origDescribe
	})

	tests := []struct {
		name     string
		version  string
		commit   string
		module   string
		describe string
		want     string
	}{
		{name: "ldflags priority", version: "1.2.3", module: "v9.9.9", want: "1.2.3"},
		{name: "dev ignored", version: "dev", module: "v0.4.0", want: "v0.4.0"},
		{name: "git describe", module: "(devel)", describe: "v1.0.0-3-gabc", want: "v1.0.0-3-gabc"},
		{name: "commit fallback", commit: "deadbeef", want: "commit-deadbeef"},
		{name: "devel fallback", want: "devel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			readBuildInfo = func() (*debug.BuildInfo, bool) {
				if tt.module == "" {
					return nil, false
				}
				return &debug.BuildInfo{Main: debug.Module{Version: tt.module}}, true
			}
			describe = func() string { return tt.describe }

			if got := GetVersion(); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}
