// Package build provides information about the build of the binary.
// Values are set from the build environment via ldflags.
package build

const DevVersionValue = "dev"

var (
	BuildVersion = DevVersionValue
	BuildDate    = "-"
	GitCommit    = "-"
)
