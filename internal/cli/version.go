package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X" at release time. Unset values fall back to the
// build info Go embeds in the binary.
var (
	Version   = "dev"
	GitCommit = ""
	BuildDate = ""
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of outline and the build it came from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		bi, _ := debug.ReadBuildInfo()
		writeVersion(cmd.OutOrStdout(), resolveVersion(bi), versionShort)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version")
	rootCmd.AddCommand(versionCmd)
}

type versionInfo struct {
	Version   string
	Commit    string
	BuildDate string
	Modified  bool
	GoVersion string
}

// resolveVersion fills in whatever the linker flags left unset from bi,
// which is nil when the binary carries no build info.
func resolveVersion(bi *debug.BuildInfo) versionInfo {
	v := versionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
	if bi == nil {
		return v
	}
	if bi.GoVersion != "" {
		v.GoVersion = bi.GoVersion
	}
	// go install module@version stamps the main module; local builds say (devel).
	if v.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		v.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if v.Commit == "" {
				v.Commit = s.Value
			}
		case "vcs.time":
			if v.BuildDate == "" {
				v.BuildDate = s.Value
			}
		case "vcs.modified":
			v.Modified = s.Value == "true"
		}
	}
	return v
}

// mcpVersion is the version reported to MCP clients.
func mcpVersion() string {
	bi, _ := debug.ReadBuildInfo()
	return resolveVersion(bi).Version
}

func writeVersion(w io.Writer, v versionInfo, short bool) {
	if short {
		fmt.Fprintln(w, v.Version)
		return
	}
	commit := v.Commit
	if commit == "" {
		commit = "unknown"
	} else if len(commit) > 12 {
		commit = commit[:12]
	}
	if v.Modified {
		commit += " (modified)"
	}
	date := v.BuildDate
	if date == "" {
		date = "unknown"
	}
	fmt.Fprintf(w, "outline %s\n", v.Version)
	fmt.Fprintf(w, "  commit:  %s\n", commit)
	fmt.Fprintf(w, "  built:   %s\n", date)
	fmt.Fprintf(w, "  go:      %s %s/%s\n", v.GoVersion, runtime.GOOS, runtime.GOARCH)
}
