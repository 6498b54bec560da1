// SPDX-License-Identifier: MIT

// Package provenance collects the attributes stamped on every generated grid
// and remap file: format version, code revision, command line, host, time and
// a unique run id.
package provenance

import (
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GridVersion is the version of the remap file layout.
const GridVersion = "0.2"

// Attrs are the global attributes of one run.
type Attrs struct {
	GridVersion  string    `yaml:"grid_version" toml:"grid_version"`
	CodeVersion  string    `yaml:"code_version" toml:"code_version"`
	History      string    `yaml:"history" toml:"history"`
	Hostname     string    `yaml:"hostname" toml:"hostname"`
	CreationTime time.Time `yaml:"creation_time" toml:"creation_time"`
	RunID        string    `yaml:"run_id" toml:"run_id"`
}

// Collect gathers the attributes of the current process. args is the command
// line recorded as history.
func Collect(args []string) Attrs {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}

	return Attrs{
		GridVersion:  GridVersion,
		CodeVersion:  codeVersion(),
		History:      strings.Join(args, " "),
		Hostname:     host,
		CreationTime: time.Now().UTC().Truncate(time.Second),
		RunID:        uuid.NewString(),
	}
}

// codeVersion returns the VCS revision embedded by the Go toolchain, the
// module version, or "unknown".
func codeVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var rev, dirty string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	switch {
	case rev != "":
		return rev + dirty
	case info.Main.Version != "" && info.Main.Version != "(devel)":
		return info.Main.Version
	}

	return "unknown"
}

// Pairs returns the attributes as ordered key/value pairs.
func (a Attrs) Pairs() [][2]string {
	return [][2]string{
		{"grid_version", a.GridVersion},
		{"code_version", a.CodeVersion},
		{"history", a.History},
		{"hostname", a.Hostname},
		{"creation_time", a.CreationTime.Format(time.RFC3339)},
		{"run_id", a.RunID},
	}
}

// FromPairs is the inverse of Pairs. Unknown keys are ignored; a malformed
// creation time is left zero.
func FromPairs(kv map[string]string) Attrs {
	a := Attrs{
		GridVersion: kv["grid_version"],
		CodeVersion: kv["code_version"],
		History:     kv["history"],
		Hostname:    kv["hostname"],
		RunID:       kv["run_id"],
	}
	if t, err := time.Parse(time.RFC3339, kv["creation_time"]); err == nil {
		a.CreationTime = t
	}

	return a
}
