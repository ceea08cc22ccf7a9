package runner

import "github.com/gh-nvat/gitops-releasegate/src/pkg/models"

type RunnerInterface interface {
	// Initialize the runner with necessary context and data
	Initialize() error

	// Evaluate all active environments and assemble the report
	EvaluateEnvironments() (*models.Report, error)

	// Main routine to process the runner
	Process() error

	// Handling the export
	Output(report *models.Report) error
}
