package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/ecs"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/policy"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/template"
)

var logger *log.Entry = log.New().WithFields(log.Fields{
	"package": "runner",
})

type RunnerBase struct {
	Context context.Context
	Options *Options

	RunMode string

	Lookup   ecs.ImageLookup
	Renderer *template.Renderer

	EnvsConfig *models.EnvironmentsConfig
}

// make RunnerBase implement RunnerInterface
var _ RunnerInterface = (*RunnerBase)(nil)

func NewRunnerBase(
	ctx context.Context,
	options *Options,
	lookup ecs.ImageLookup,
	renderer *template.Renderer,
) (*RunnerBase, error) {
	runner := &RunnerBase{
		Context:  ctx,
		Options:  options,
		RunMode:  options.RunMode,
		Lookup:   lookup,
		Renderer: renderer,
	}
	return runner, nil
}

func (r *RunnerBase) Initialize() error {
	logger.Info("Initializing runner: starting...")

	// if any is nil, return error
	if r.Lookup == nil || r.Renderer == nil {
		return fmt.Errorf("lookup and renderer are required")
	}

	logger.Info("Initialize runner: loading environments configuration")
	cfg, err := LoadEnvironmentsConfig(r.Options.EnvironmentsConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load environments config: %w", err)
	}
	r.EnvsConfig = cfg

	logger.Info("Initialize runner: done.")
	return nil
}

// activeEnvironments returns the environments to evaluate: policy-table
// entries that appear in the config with present credentials, in table
// order. This order is also the report order.
func (r *RunnerBase) activeEnvironments() []models.Environment {
	var active []models.Environment
	for _, env := range policy.Environments() {
		cfg, ok := r.EnvsConfig.Environments[string(env)]
		if !ok {
			continue
		}
		if !ResolveCredentials(env, cfg).Present() {
			logger.WithField("env", env).Info("Skipping environment without credentials")
			continue
		}
		active = append(active, env)
	}
	return active
}

// EvaluateEnvironments looks up each active environment's current image and
// runs the deployment gate, all environments concurrently. A failed lookup
// becomes a failure entry for that environment only; siblings and the run
// are unaffected. The report is assembled in policy-table order no matter
// which lookup finishes first.
func (r *RunnerBase) EvaluateEnvironments() (*models.Report, error) {
	logger.Info("EvaluateEnvironments: starting...")

	active := r.activeEnvironments()
	results := make([]models.GateResult, len(active))

	var wg sync.WaitGroup
	for i, env := range active {
		wg.Add(1)
		go func(slot int, env models.Environment) {
			defer wg.Done()
			results[slot] = r.evaluateEnvironment(env)
		}(i, env)
	}
	wg.Wait()

	report := &models.Report{
		ReleaseVersion: r.Options.ReleaseVersion,
		Timestamp:      time.Now(),
		Results:        results,
	}
	logger.WithField("environments", len(results)).Info("EvaluateEnvironments: done.")
	return report, nil
}

// evaluateEnvironment owns one environment: credentials, lookup, gate. It
// never returns an error; failures are recorded on the result.
func (r *RunnerBase) evaluateEnvironment(env models.Environment) models.GateResult {
	cfg := r.EnvsConfig.Environments[string(env)]
	creds := ResolveCredentials(env, cfg)
	cluster, service := QualifiedClusterService(env, cfg)

	image, err := r.Lookup.LookupCurrentImage(r.Context, env, creds, cluster, service)
	if err != nil {
		logger.WithField("env", env).WithField("error", err).Error("Image lookup failed")
		return models.GateResult{
			Environment: env,
			LookupError: err.Error(),
		}
	}

	result, err := policy.Evaluate(env, image.Tag, r.Options.ReleaseVersion)
	if err != nil {
		// active environments come from the policy table, so this is a bug
		logger.WithField("env", env).WithField("error", err).Error("Gate evaluation failed")
		return models.GateResult{
			Environment: env,
			LookupError: err.Error(),
		}
	}
	return result
}

func (r *RunnerBase) Process() error {
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
	fmt.Println(body)

	if err := r.Output(report); err != nil {
		return err
	}
	return nil
}

func (r *RunnerBase) Output(report *models.Report) error {
	logger.Info("Output: starting...")
	if err := r.outputReportJson(report); err != nil {
		return err
	}
	if err := r.outputGitHubActionOutput(report); err != nil {
		return err
	}
	logger.Info("Output: done.")
	return nil
}

// Exporting report json file to output directory if enabled
func (r *RunnerBase) outputReportJson(report *models.Report) error {
	if !r.Options.EnableExportReport {
		logger.Info("OutputJson: option was disabled")
		return nil
	}
	logger.Info("OutputJson: starting...")

	if err := os.MkdirAll(r.Options.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	resultsJson, err := json.Marshal(report)
	if err != nil {
		return err
	}
	filePath := filepath.Join(r.Options.OutputDir, "report.json")
	if err := os.WriteFile(filePath, resultsJson, 0644); err != nil {
		logger.WithField("filePath", filePath).WithField("error", err).Error("Failed to write report data to file")
		return err
	}
	logger.WithField("filePath", filePath).Info("Written report data to file")
	return nil
}

// Expose the serialized report as a step output when running inside
// GitHub Actions ($GITHUB_OUTPUT set). json.Marshal emits a single line,
// so the plain key=value form is safe.
func (r *RunnerBase) outputGitHubActionOutput(report *models.Report) error {
	outputPath := os.Getenv("GITHUB_OUTPUT")
	if outputPath == "" {
		return nil
	}

	resultsJson, err := json.Marshal(report)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, "report=%s\n", resultsJson); err != nil {
		return fmt.Errorf("failed to write GITHUB_OUTPUT: %w", err)
	}
	logger.WithField("outputPath", outputPath).Info("Written report to GitHub Actions output")
	return nil
}
