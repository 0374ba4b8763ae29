package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestVersionCommandJSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "version", "--output", "json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "dev", info.Channel)
	assert.Contains(t, info.GoVersion, "go")
}

func TestVersionCommandYAML(t *testing.T) {
	stdout, _, err := executeCommand(t, "version", "--output", "yaml")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "dev", info.Version)
	assert.NotEmpty(t, info.Platform)
}

func TestReleaseChannel(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"dev", "dev"},
		{"", "dev"},
		{"1.2.3", "stable"},
		{"v1.2.3", "stable"},
		{"1.3.0-rc.1", "prerelease"},
		{"v0.1.0-beta", "prerelease"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, releaseChannel(tt.version))
		})
	}
}

func TestBuildVariables(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, Date)
	assert.NotEmpty(t, GoVersion)
	assert.Contains(t, GoVersion, "go")
}
