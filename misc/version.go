// Package misc keeps build time information about the program.
package misc

// set by the linker: -ldflags "-X cssprite/misc.version=..."
var (
	appName = "cssprite"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns the program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
