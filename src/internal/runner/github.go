package runner

import (
	"context"
	"fmt"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/ecs"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/github"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/template"
)

type RunnerGitHub struct {
	RunnerBase

	options  *Options
	ghclient github.GitHubClient

	pullRequests []*models.PullRequest
}

// make RunnerGitHub implement RunnerInterface
var _ RunnerInterface = (*RunnerGitHub)(nil)

func NewRunnerGitHub(
	ctx context.Context,
	options *Options,
	ghclient github.GitHubClient,
	lookup ecs.ImageLookup,
	renderer *template.Renderer,
) (*RunnerGitHub, error) {
	if ghclient == nil {
		return nil, fmt.Errorf("GitHub client is not initialized")
	}
	baseRunner, err := NewRunnerBase(ctx, options, lookup, renderer)
	if err != nil {
		return nil, err
	}
	runner := &RunnerGitHub{
		RunnerBase: *baseRunner,
		ghclient:   ghclient,
		options:    options,
	}
	return runner, nil
}

func (r *RunnerGitHub) Initialize() error {
	lg := logger.WithField("func", "RunnerGitHub.Initialize()")
	lg.Info("Initializing runner: starting...")

	if err := r.RunnerBase.Initialize(); err != nil {
		return err
	}

	prs, err := r.ghclient.FindOpenPullRequestsForCommit(r.Context, r.options.GhRepo, r.options.GhCommitSha)
	if err != nil {
		return fmt.Errorf("failed to discover pull requests: %w", err)
	}
	r.pullRequests = prs
	if len(prs) == 0 {
		lg.WithField("commitSha", r.options.GhCommitSha).Warn("No open pull requests targeting main contain this commit; report will not be posted anywhere")
	}

	lg.Info("Initializing runner: done.")
	return nil
}

func (r *RunnerGitHub) Process() error {
	logger.Info("Process: starting...")

	report, err := r.EvaluateEnvironments()
	if err != nil {
		return err
	}
	logger.WithField("report", report).Debug("Evaluated environments")

	body, err := r.Renderer.Render(report)
	if err != nil {
		return err
	}

	r.postReportToPullRequests(body)

	if err := r.Output(report); err != nil {
		return err
	}

	logger.Info("Process: done.")
	return nil
}

// postReportToPullRequests upserts the report comment on every discovered
// PR. A failure on one PR is logged and the rest are still attempted.
func (r *RunnerGitHub) postReportToPullRequests(body string) {
	for _, pr := range r.pullRequests {
		lg := logger.WithField("prNumber", pr.Number)

		existing, err := r.ghclient.FindToolComment(r.Context, r.options.GhRepo, pr.Number, template.ToolCommentSignature)
		if err != nil {
			lg.WithField("error", err).Error("Failed to search for existing tool comment, skipping PR")
			continue
		}

		if existing != nil {
			if err := r.ghclient.UpdateComment(r.Context, r.options.GhRepo, existing.ID, body); err != nil {
				lg.WithField("commentID", existing.ID).WithField("error", err).Error("Failed to update comment")
				continue
			}
			lg.WithField("commentID", existing.ID).Info("Updated report comment")
			continue
		}

		created, err := r.ghclient.CreateComment(r.Context, r.options.GhRepo, pr.Number, body)
		if err != nil {
			lg.WithField("error", err).Error("Failed to create comment")
			continue
		}
		lg.WithField("commentID", created.ID).Info("Created report comment")
	}
}
