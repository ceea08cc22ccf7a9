package runner

type Options struct {
	// Run mode
	RunMode string // "github" or "local"
	Debug   bool   // Debug mode

	// Common options
	ReleaseVersion         string // Candidate release version (required)
	EnvironmentsConfigPath string // Path to the releasegate.yaml environments file
	OutputDir              string
	EnableExportReport     bool

	// GitHub mode options
	GhRepo      string // owner/repo
	GhCommitSha string // release commit; its open main-targeting PRs receive the report
}
