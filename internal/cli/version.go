package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	// Set via ldflags at build time
	Version = "dev"
	Commit  = "unknown"
)

func newVersionCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if o.jsonOut {
				return printJSON(o.out, map[string]string{
					"version":    Version,
					"commit":     Commit,
					"go_version": runtime.Version(),
					"os":         runtime.GOOS,
					"arch":       runtime.GOARCH,
				})
			}
			fmt.Fprintf(o.out, "jamwaves %s (%s, %s/%s)\n", Version, Commit, runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
