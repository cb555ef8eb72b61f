package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Version variables injected at build time via ldflags
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the short git commit hash
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns a formatted version string with all build info
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile loads version info from a .version file next to the
// binary. File values are fallbacks only: a value already set via ldflags
// (no longer at its default) wins.
func LoadVersionFromFile() {
	exe, err := os.Executable()
	if err != nil {
		return
	}

	f, err := os.Open(filepath.Join(filepath.Dir(exe), ".version"))
	if err != nil {
		return
	}
	defer f.Close()

	parseVersionFile(f)
}

// parseVersionFile reads "key: value" lines, skipping blanks and # comments.
func parseVersionFile(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		applyVersionValue(strings.TrimSpace(key), strings.TrimSpace(val))
	}
}

func applyVersionValue(key, val string) {
	if val == "" {
		return
	}
	switch key {
	case "version":
		if Version == "dev" {
			Version = val
		}
	case "build":
		if Build == "unknown" {
			Build = val
		}
	case "commit":
		if GitCommit == "unknown" {
			GitCommit = val
		}
	}
}
