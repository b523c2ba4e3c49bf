package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nfrund/userdash/internal/config"
	"github.com/nfrund/userdash/internal/logging"
	"github.com/nfrund/userdash/internal/upstream"
)

// options holds the state shared by every subcommand.
type options struct {
	fs      afero.Fs
	baseURL string
	timeout time.Duration
}

// client builds an upstream client from the environment, overridden by the
// command line flags.
func (o *options) client() *upstream.Client {
	cfg := config.FromEnv()
	opts := upstream.Options{
		BaseURL: cfg.GetUpstreamBaseURL(),
		Timeout: cfg.GetUpstreamTimeout(),
		RPS:     cfg.GetUpstreamRPS(),
		Burst:   cfg.GetUpstreamBurst(),
	}
	if o.baseURL != "" {
		opts.BaseURL = o.baseURL
	}
	if o.timeout > 0 {
		opts.Timeout = o.timeout
	}
	return upstream.NewClient(opts)
}

// NewRootCmd builds the command tree. Files are written through fs.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	o := &options{fs: fs}

	rootCmd := &cobra.Command{
		Use:   "userdash-cli",
		Short: "userdash CLI tool",
		Long: `userdash-cli fetches user data from the upstream source the dashboard reads.

Available commands:
  profile      Print a user's profile
  activities   Print a user's activities
  snapshot     Load a dashboard to completion and write it as HTML

Use "userdash-cli [command] --help" for more information about a specific command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries command output.
			slog.SetDefault(logging.NewLogger(os.Stderr, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")))
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.baseURL, "base-url", "", "upstream base URL (default from UPSTREAM_BASE_URL)")
	rootCmd.PersistentFlags().DurationVar(&o.timeout, "timeout", 0, "upstream request timeout (default from UPSTREAM_TIMEOUT)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newProfileCmd(o),
		newActivitiesCmd(o),
		newSnapshotCmd(o),
	)
	return rootCmd
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
