package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// ashc's own version, matched against an ash.mod "require ashc"
// constraint by internal/manifest before a module is checked.
const (
	Version   = "0.1.0"
	BuildDate = "2026-01-01"
	CommitSHA = "unknown" // a constant, so PrintVersion's commit line is not printed
)

// versionInfo is the payload printed by -version; unexported since
// nothing outside this package needs it structured, only rendered.
type versionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// PrintVersion renders ashc's own version for the -version flag,
// either as the ash.mod-style "require ashc <version>" constraint a
// user would read, or as JSON for scripting. A JSON marshal failure
// (which requires no real-world input to trigger) falls back to the
// text form rather than printing nothing.
func PrintVersion(toolName string, jsonOutput bool) {
	info := versionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{"tool": toolName, "version_info": info}, "", "  ")
		if err == nil {
			fmt.Println(string(data))
			return
		}
		fmt.Fprintf(os.Stderr, "Error: failed to marshal version info to JSON: %v\n", err)
	}

	fmt.Printf("%s v%s (ash.mod: require ashc v%s)\n", toolName, info.Version, info.Version)
	if info.CommitSHA != "unknown" && info.CommitSHA != "" {
		fmt.Printf("Commit: %s, built %s\n", info.CommitSHA, info.BuildDate)
	}
	fmt.Printf("%s on %s/%s\n", info.GoVersion, info.Platform, info.Arch)
}

// ExitWithError prints an error message and exits with code 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
