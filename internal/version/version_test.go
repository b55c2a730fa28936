package version

import (
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withVars(t *testing.T, version, commit, built string) {
	t.Helper()
	v, c, b := Version, GitCommit, BuildTime
	Version, GitCommit, BuildTime = version, commit, built
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })
}

func TestGetFromLdflags(t *testing.T) {
	withVars(t, "v1.2.0", "0123456789abcdef", "2026-01-02T03:04:05Z")
	withBuildInfo(t, nil)

	info := Get()
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "0123456789abcdef", info.GitCommit)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), info.BuildTime)
	assert.True(t, info.IsRelease())
	assert.Equal(t, "v1.2.0 (0123456)", info.Short())
	assert.Contains(t, info.String(), "Built: 2026-01-02T03:04:05Z")
}

func TestGetFromVCS(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown")
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abcdef0123456"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	info := Get()
	assert.Equal(t, "dev-abcdef0", info.Version)
	assert.Equal(t, "abcdef0123456", info.GitCommit)
	assert.True(t, info.Dirty)
	assert.False(t, info.IsRelease())
	assert.Equal(t, "dev-abcdef0", info.Short())
	assert.Contains(t, info.String(), "Commit: abcdef0123456 (dirty)")
}

func TestGetWithoutBuildInfo(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown")
	withBuildInfo(t, nil)

	info := Get()
	assert.Equal(t, "dev", info.Version)
	assert.True(t, info.BuildTime.IsZero())
	assert.NotContains(t, info.String(), "Commit:")
	assert.NotEmpty(t, info.GoVersion)
}

func TestParseTime(t *testing.T) {
	assert.True(t, parseTime("garbage").IsZero())
	assert.False(t, parseTime("2026-01-02 03:04:05").IsZero())
}
