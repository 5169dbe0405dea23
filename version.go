package mywebapi

import (
	"fmt"
	"runtime"
)

// Version is the library semantic version. Override via -ldflags for tagged
// builds.
var Version = "1.0.0"

// UserAgent returns the value sent in the User-Agent header of every fetch.
func UserAgent() string {
	return fmt.Sprintf("mywebapi/%s (%s)", Version, runtime.Version())
}
