package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the version",
		Annotations: map[string]string{annotationNoSession: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, figure.NewFigure("TrueDev", "cybermedium", true).String())
			version := Version
			if info, ok := debug.ReadBuildInfo(); ok && version == "dev" && info.Main.Version != "" {
				version = info.Main.Version
			}
			fmt.Fprintf(out, "truedev %s\n", version)
			return nil
		},
	}
}
