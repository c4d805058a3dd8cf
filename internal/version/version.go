// Package version carries build information for glot-based binaries.
// The variables can be overridden at build time via -ldflags.
package version

import "github.com/fatih/color"

var (
	// Version is the semantic version of the driver.
	Version = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// bannerColor ignores the package-global TTY sniffing. Whether to
// colorize is the caller's decision, not the library's.
var bannerColor = func() *color.Color {
	c := color.New(color.FgCyan, color.Bold)
	c.EnableColor()
	return c
}()

// String returns the plain version, with the commit hash appended when one
// was baked in. Used by -v output, which must stay machine-readable.
func String() string {
	if GitCommit != "" {
		return Version + "+" + GitCommit
	}
	return Version
}

// Pretty returns the version styled for interactive banners.
func Pretty() string {
	return bannerColor.Sprint(String())
}
