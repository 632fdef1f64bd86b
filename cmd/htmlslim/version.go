package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Build metadata injected via -ldflags "-X main.version=... -X main.commit=...".
var (
	version = ""
	commit  = ""
)

// buildVersion resolves the version string for display. Release builds set
// it via ldflags; `go install` builds fall back to the stamped module build
// info; anything else reports "(devel)". A known commit is appended in
// short form.
func buildVersion() string {
	v, c := version, commit

	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" && info.Main.Version != "" {
			v = info.Main.Version
		}
		if c == "" {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					c = setting.Value
				}
			}
		}
	}

	if v == "" {
		v = "(devel)"
	}
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "" {
		return v
	}
	return v + " (" + c + ")"
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version of htmlslim, including the commit it was built from when known.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "htmlslim %s\n", buildVersion())
		},
	}
}
