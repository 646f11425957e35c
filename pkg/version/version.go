package version

import "fmt"

// IntqmVersion indicates what version of intqm the binary belongs to
var IntqmVersion string

// GitCommit indicates which git commit the binary was built from
var GitCommit string

// String returns a pretty string concatenation of IntqmVersion and GitCommit
func String() string {
	version := IntqmVersion
	if version == "" {
		version = "devel"
	}
	return fmt.Sprintf("intqm version: %s\n   git commit: %s\n", version, GitCommit)
}
