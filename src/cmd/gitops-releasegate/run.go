package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/gh-nvat/gitops-releasegate/src/internal/runner"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/ecs"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/github"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/template"
)

var logger *log.Entry = log.New().WithFields(log.Fields{
	"package": "run",
})

const (
	RUN_MODE_GITHUB = "github"
	RUN_MODE_LOCAL  = "local"
)

// Initialize creates and initializes the appropriate runner
func createRunner(ctx context.Context, opts *runner.Options) (runner.RunnerInterface, error) {
	logger.WithField("opts", opts).Debug("Creating runner..")

	lookup := ecs.NewLookup()
	renderer := template.NewRenderer()

	switch opts.RunMode {
	case RUN_MODE_GITHUB:
		ghClient, err := github.NewClient()
		if err != nil {
			return nil, fmt.Errorf("GitHub authentication failed: %w", err)
		}
		runner, err := runner.NewRunnerGitHub(ctx, opts, ghClient, lookup, renderer)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitHub runner: %w", err)
		}
		return runner, nil
	case RUN_MODE_LOCAL:
		runner, err := runner.NewRunnerLocal(ctx, opts, lookup, renderer)
		if err != nil {
			return nil, fmt.Errorf("failed to create Local runner: %w", err)
		}
		return runner, nil
	default:
		return nil, fmt.Errorf("invalid run mode: %s", opts.RunMode)
	}
}

func initialize(ctx context.Context, opts *runner.Options) (runner.RunnerInterface, error) {
	runner, err := createRunner(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	if err := runner.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize runner: %w", err)
	}
	return runner, nil
}

func run(ctx context.Context, opts *runner.Options) error {
	logger.WithField("opts", opts).Info("Running..")
	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	// Validate options
	if err := validateOptions(opts); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	// Initialize runner
	appRunner, err := initialize(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	err = appRunner.Process()
	if err != nil {
		return fmt.Errorf("failed to process: %w", err)
	}

	return nil
}

func validateOptions(opts *runner.Options) error {
	// Validate run mode
	if opts.RunMode != RUN_MODE_GITHUB && opts.RunMode != RUN_MODE_LOCAL {
		return fmt.Errorf("run-mode must be 'github' or 'local', got: %s", opts.RunMode)
	}

	if opts.ReleaseVersion == "" {
		return fmt.Errorf("--release-version is required")
	}
	if opts.EnvironmentsConfigPath == "" {
		return fmt.Errorf("--environments-config is required")
	}

	// Validate mode-specific options
	if opts.RunMode == RUN_MODE_GITHUB {
		if opts.GhRepo == "" {
			return fmt.Errorf("github mode requires --gh-repo")
		}
		if _, _, err := github.ParseOwnerRepo(opts.GhRepo); err != nil {
			return err
		}
		if opts.GhCommitSha == "" {
			return fmt.Errorf("github mode requires --gh-commit-sha")
		}
	}

	return nil
}
