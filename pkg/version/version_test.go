package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		stamped string
		want    string
	}{
		{name: "default", stamped: defaultVersion, want: defaultVersion},
		{name: "plain semver", stamped: "1.2.3", want: "1.2.3"},
		{name: "leading v stripped", stamped: "v2.0.1", want: "2.0.1"},
		{name: "garbage falls back", stamped: "not-a-version", want: defaultVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := Version
			t.Cleanup(func() { Version = orig })

			Version = tt.stamped
			assert.Equal(t, tt.want, GetVersion())
		})
	}
}

func TestUserAgent(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.4.0"
	assert.Equal(t, "co2-monitor/1.4.0", UserAgent())
	assert.False(t, IsDefault())
}
