package consts

import "fmt"

// These will be injected via -ldflags at build time
var (
	gitSha string = "unknown"
	gitTag string = "dev"
)

// Version returns a human-readable build version string.
func Version() string {
	return fmt.Sprintf("%s (%s)", gitTag, gitSha)
}
