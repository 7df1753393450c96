package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xschemadev/urlfetch/config"
	"github.com/xschemadev/urlfetch/logger"
	"github.com/xschemadev/urlfetch/pipeline"
	"github.com/xschemadev/urlfetch/ui"
)

// Version information set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &flagValues{}

	cmd := &cobra.Command{
		Use:   "urlfetch -i <file> [flags]",
		Short: "Parses each line of a file for URLs and does something with them",
		Long: `urlfetch scans a text file line by line, extracts every URL it finds
(a line that is a single Markdown link yields its target), optionally filters
query parameters, then runs a command per URL and/or appends the URLs to
another file.`,
		Example: `  urlfetch -i links.md -x download-url
  urlfetch -i inbox.txt --exclude utm_source,utm_medium -a archive.txt -z`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("%w: unexpected argument %q (use --input)", config.ErrInvalidConfig, args[0])
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	bindFlags(cmd, opts)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	})

	cmd.Version = version
	cmd.SetVersionTemplate("urlfetch {{.Version}} (" + commit + ", " + date + ")\n")
	return cmd
}

// Execute runs the root command and exits with the code matching the failure.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ui.New(os.Stderr, false).ErrorMsg("urlfetch failed", err, hintFor(err)...)
		os.Exit(config.ExitCode(err))
	}
}

func runFetch(cmd *cobra.Command, opts *flagValues) error {
	cfg, err := buildConfig(cmd.Flags(), opts)
	if err != nil {
		return err
	}

	if cfg.LogFile != "" {
		l, closer := logger.NewFile(cfg.LogFile, cfg.Verbose)
		defer closer.Close()
		logger.SetLogger(l)
	}

	p := ui.New(cmd.OutOrStdout(), cfg.Verbose)
	_, err = pipeline.Run(cmd.Context(), cfg, p)
	return err
}

func hintFor(err error) []string {
	switch config.ExitCode(err) {
	case config.ExitUsage:
		return []string{"Run urlfetch --help for usage"}
	case config.ExitInputFailed:
		return []string{"Check the path passed to --input"}
	}
	return nil
}
