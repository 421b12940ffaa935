package main

import (
	_ "embed"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// Version reports the enumgen version. Builds installed with
// `go install ...@version` report the module version; other builds report
// "devel-0.1.0+abc1234", with "-dirty" appended for modified checkouts.
func Version() string {
	base := strings.TrimSpace(embeddedVersion)
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return base
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	v := "devel-" + base
	if rev := buildSetting(info, "vcs.revision"); len(rev) >= 7 {
		v += "+" + rev[:7]
	}
	if buildSetting(info, "vcs.modified") == "true" {
		v += "-dirty"
	}
	return v
}

func buildSetting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
