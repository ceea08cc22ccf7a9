package runner

import (
	"context"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/ecs"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/template"
)

// RunnerLocal renders the report to stdout instead of posting it to
// GitHub. Useful for pipeline debugging from a workstation.
type RunnerLocal struct {
	RunnerBase
}

// make RunnerLocal implement RunnerInterface
var _ RunnerInterface = (*RunnerLocal)(nil)

func NewRunnerLocal(
	ctx context.Context,
	options *Options,
	lookup ecs.ImageLookup,
	renderer *template.Renderer,
) (*RunnerLocal, error) {
	baseRunner, err := NewRunnerBase(ctx, options, lookup, renderer)
	if err != nil {
		return nil, err
	}
	runner := &RunnerLocal{
		RunnerBase: *baseRunner,
	}
	return runner, nil
}

func (r *RunnerLocal) Initialize() error {
	return r.RunnerBase.Initialize()
}

func (r *RunnerLocal) Process() error {
	return r.RunnerBase.Process()
}
