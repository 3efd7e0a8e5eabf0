// Package version exposes the build version of co2-monitor.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// defaultVersion is reported when no version was stamped at build time
// or the stamped value is not valid semver.
const defaultVersion = "0.1.0-dev"

// Version is overridden at build time with
// -ldflags "-X github.com/c0pp3rdru1d/C02-Monitor/pkg/version.Version=1.2.3".
//
//nolint:gochecknoglobals // Set via ldflags.
var Version = defaultVersion

// GetVersion returns the normalized semantic version of the binary.
// A leading "v" is stripped; an unparseable value falls back to the default.
func GetVersion() string {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return defaultVersion
	}
	return v.String()
}

// IsDefault reports whether the binary was built without a stamped version.
func IsDefault() bool {
	return GetVersion() == defaultVersion
}

// UserAgent returns the client identifier sent with outgoing HTTP requests.
func UserAgent() string {
	return "co2-monitor/" + GetVersion()
}
