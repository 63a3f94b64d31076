// Package version exposes the build metadata stamped into the binary.
package version

import "runtime/debug"

// Set at build time via -ldflags.
//
//nolint:gochecknoglobals
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the version information of the running binary.
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit"  yaml:"commit"`
	Date    string `json:"date"    yaml:"date"`
	Go      string `json:"go"      yaml:"go"`
}

// Get returns the version information, falling back to module build info
// when the ldflags were not set.
func Get() Info {
	info := Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}

	if build, ok := debug.ReadBuildInfo(); ok {
		info.Go = build.GoVersion

		if info.Version == "dev" && build.Main.Version != "" && build.Main.Version != "(devel)" {
			info.Version = build.Main.Version
		}
	}

	return info
}
