// Package cli implements the jamwaves command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/config"
	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/logging"
)

// options carries the persistent flags and what PersistentPreRunE loads.
type options struct {
	cfgFile string
	jsonOut bool

	cfg      *config.Config
	log      *zap.Logger
	closeLog func()
	out      io.Writer
}

// root is the command tree together with the options its commands share.
type root struct {
	cmd  *cobra.Command
	opts *options
}

func newRoot() *root {
	o := &options{closeLog: func() {}}

	cmd := &cobra.Command{
		Use:   "jamwaves",
		Short: "Browse and play the Jamendo music catalog",
		Long: `jamwaves browses trending tracks, playlists and search results from
Jamendo, keeps a list of favorites and plays tracks in the terminal.

Run without a subcommand to start the interactive player.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), o)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&o.cfgFile, "config", "c", "", "config file (default: ~/.config/jamwaves/config.toml)")
	cmd.PersistentFlags().BoolVarP(&o.jsonOut, "json", "j", false, "output as JSON")

	cmd.AddCommand(
		newTrendingCmd(o),
		newPlaylistsCmd(o),
		newSearchCmd(o),
		newTrackCmd(o),
		newFavoritesCmd(o),
		newServeCmd(o),
		newLastfmCmd(o),
		newVersionCmd(o),
	)
	return &root{cmd: cmd, opts: o}
}

// execute runs the command line and closes the log afterwards. cobra skips
// post-run hooks when a command fails, so this cannot live in one.
func (r *root) execute(ctx context.Context) error {
	defer func() { r.opts.closeLog() }()
	return r.cmd.ExecuteContext(ctx)
}

func (o *options) init(cmd *cobra.Command) error {
	o.out = cmd.OutOrStdout()

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	o.cfg = cfg

	logCfg, err := cfg.GetLogConfig()
	if err != nil {
		return errmsg.Wrap(errmsg.OpConfigLoad, err)
	}
	log, closeLog, err := logging.New(logging.Options{File: logCfg.File, Level: logCfg.Level})
	if err != nil {
		return errmsg.Wrap(errmsg.OpInitialize, err)
	}
	o.log = log
	o.closeLog = closeLog
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := newRoot().execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
