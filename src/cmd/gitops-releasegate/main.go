package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gh-nvat/gitops-releasegate/src/internal/runner"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command, parse args from CLI
func newRootCmd() *cobra.Command {
	opts := &runner.Options{}

	cmd := &cobra.Command{
		Use:   "gitops-releasegate",
		Short: "Deployment status reporter for release pipelines",
		Long: `gitops-releasegate checks, per deployment environment, whether a candidate
release will replace the image currently running there, and posts a summary
comment on the open PRs that contain the release commit.`,
		Version: fmt.Sprintf("%s (built: %s)", Version, BuildTime),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
	}

	// Run mode
	cmd.Flags().StringVar(&opts.RunMode, "run-mode", "github", "Run mode: github or local")

	// Common flags
	cmd.Flags().StringVar(&opts.ReleaseVersion, "release-version", "", "Candidate release version (required)")
	cmd.Flags().StringVar(&opts.EnvironmentsConfigPath, "environments-config", "./releasegate.yaml",
		"Path to the environments configuration file")
	cmd.Flags().BoolVar(&opts.Debug, "debug", false, "Debug mode")

	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", "./output",
		"Output directory in case the tool need to export files.")
	cmd.Flags().BoolVar(&opts.EnableExportReport, "enable-export-report", false, "Enable export report (json file to output dir)")

	// GitHub mode flags
	cmd.Flags().StringVar(&opts.GhRepo, "gh-repo", "",
		"GitHub repository (e.g., org/repo) [github mode]")
	cmd.Flags().StringVar(&opts.GhCommitSha, "gh-commit-sha", "",
		"Release commit SHA used to discover open PRs [github mode]")

	// Mark required flags
	_ = cmd.MarkFlagRequired("release-version")

	return cmd
}
