package internal

import "fmt"

var (
	version  = "0.3.0"
	revision = "dev"
)

// Version returns the release string, overridable at link time with
// -ldflags "-X github.com/vxst/dedup/internal.revision=...".
func Version() string {
	return fmt.Sprintf("%s+%s", version, revision)
}
