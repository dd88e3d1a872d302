package main

import "runtime/debug"

// version is stamped at release time with -ldflags "-X main.version=v1.2.3".
var version = ""

// getVersion prefers the ldflags stamp, then the module version recorded by
// "go install ...@version", and falls back to "dev" for local builds.
func getVersion() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}
