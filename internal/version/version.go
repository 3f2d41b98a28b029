// Package version reports the version of this module, as recorded in the build info of the binary.
package version

import (
	"runtime/debug"
	"strings"
)

// Default is the version when the build info doesn't carry one, such as in tests or `go run`.
const Default = "dev"

// modulePath is the path of this module in go.mod.
const modulePath = "github.com/tetratelabs/wasmvm"

// GetVersion returns the version of this module, from the main module when it is the binary being run, or from
// the dependency when a downstream binary imports it.
func GetVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Default
	}
	return versionOf(info)
}

func versionOf(info *debug.BuildInfo) string {
	if info.Main.Path == modulePath {
		return normalize(info.Main.Version)
	}
	for _, dep := range info.Deps {
		if dep.Path != modulePath {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		return normalize(dep.Version)
	}
	return Default
}

// normalize returns Default for the placeholder version of a main module built from source.
func normalize(v string) string {
	if v == "" || v == "(devel)" {
		return Default
	}
	return strings.TrimSpace(v)
}
