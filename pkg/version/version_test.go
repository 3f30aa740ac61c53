package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, GetVersion())
	assert.NotEmpty(t, GetGitCommit())
	assert.NotEmpty(t, GetBuildDate())
}

func TestIsRelease(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    bool
	}{
		{name: "release", version: "1.2.3", want: true},
		{name: "prefixed release", version: "v0.4.0", want: true},
		{name: "prerelease", version: "0.1.0-dev", want: false},
		{name: "garbage", version: "not-a-version", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := version
			version = tt.version
			t.Cleanup(func() { version = orig })

			assert.Equal(t, tt.want, IsRelease())
		})
	}
}
