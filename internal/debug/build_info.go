package debug

import (
	"runtime/debug"
	"strings"
)

// BuildInfo is the version control state the binary was built from.
type BuildInfo struct {
	Revision string
	Time     string
	Modified bool
}

// ReadBuildInfo returns false when the binary carries no version control information.
func ReadBuildInfo() (BuildInfo, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return BuildInfo{}, false
	}
	return fromSettings(info.Settings)
}

func fromSettings(settings []debug.BuildSetting) (BuildInfo, bool) {
	var bi BuildInfo
	found := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			bi.Revision = s.Value
		case "vcs.time":
			bi.Time = s.Value
		case "vcs.modified":
			bi.Modified = s.Value == "true"
		default:
			continue
		}
		found = true
	}
	return bi, found
}

// String is "<revision> <time>", with a "+dirty" suffix on the revision of a modified tree.
func (b BuildInfo) String() string {
	rev := b.Revision
	if b.Modified {
		rev += "+dirty"
	}
	return strings.TrimSpace(rev + " " + b.Time)
}
