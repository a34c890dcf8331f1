// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Name is the program name printed with the version.
const Name = "govnews-dashboard-tui"

var (
	// These are set via ldflags at build time
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	execCommand    = exec.CommandContext
	readBuildInfo  = debug.ReadBuildInfo
	gitCallTimeout = 2 * time.Second
)

// Reset clears the resolved values so they are computed again.
func Reset() {
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

// Resolution order: ldflags, then module build info, then git, then defaults.
func ensureInitialized() {
	once.Do(func() {
		fromBuildInfo()
		if Commit == "" {
			Commit = getGitCommit()
		}
		if Version == "" {
			Version = getGitVersion()
		}
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
	})
}

func fromBuildInfo() {
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = strings.TrimPrefix(info.Main.Version, "v")
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "" {
				Commit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if Date == "" {
				Date = s.Value
			}
		}
	}
}

func runGit(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitCallTimeout)
	defer cancel()

	cmd := execCommand(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

func getGitCommit() string {
	commit, err := runGit("describe", "--always", "--dirty")
	if err != nil || commit == "" {
		return "unknown"
	}
	return commit
}

func getGitVersion() string {
	v, err := runGit("describe", "--tags", "--abbrev=0")
	if err != nil || v == "" {
		return "dev"
	}
	return strings.TrimPrefix(v, "v")
}

// GetVersion returns the program version.
func GetVersion() string {
	ensureInitialized()
	return Version
}

// GetCommit returns the short commit hash.
func GetCommit() string {
	ensureInitialized()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	ensureInitialized()
	return Date
}

// Info returns a one-line version summary.
func Info() string {
	ensureInitialized()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
