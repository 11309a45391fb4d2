// Package build holds build-time information.
package build

// Version is the application version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"

// Commit is the VCS revision the binary was built from.
var Commit = "none"

// Date is the build timestamp.
var Date = "unknown"

// UserAgent returns the User-Agent sent to the content registry.
func UserAgent() string {
	return "modlock/" + Version + " (go.trai.ch/modlock)"
}
