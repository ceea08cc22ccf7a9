package template

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

// defaultReportTemplate renders the PR comment / stdout summary. One line
// per environment, header naming the release, footer naming the timestamp.
const defaultReportTemplate = `{{.Signature}}
## Deployment status for release ` + "`{{.ReleaseVersion}}`" + `

{{range .Lines}}- {{.}}
{{end}}
_Generated at {{.GeneratedAt}}_
`

// Renderer formats a Report into the comment body
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a renderer with the embedded default template
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("report").Parse(defaultReportTemplate)),
	}
}

type reportView struct {
	Signature      string
	ReleaseVersion string
	Lines          []string
	GeneratedAt    string
}

// Render produces the textual summary for a report. Pure formatting; all
// decisions were made by the gate evaluator.
func (r *Renderer) Render(report *models.Report) (string, error) {
	view := reportView{
		Signature:      ToolCommentSignature,
		ReleaseVersion: report.ReleaseVersion,
		GeneratedAt:    report.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"),
	}
	for _, result := range report.Results {
		view.Lines = append(view.Lines, formatResultLine(result))
	}

	var sb strings.Builder
	if err := r.tmpl.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return sb.String(), nil
}

func formatResultLine(result models.GateResult) string {
	if result.Failed() {
		return fmt.Sprintf("%s `%s`: image lookup failed (%s)",
			GlyphLookupError, result.Environment, result.LookupError)
	}
	if result.WillBeReplaced {
		return fmt.Sprintf("%s `%s`: currently running `%s`, will be replaced",
			GlyphReplaced, result.Environment, result.CurrentTag)
	}
	return fmt.Sprintf("%s `%s`: currently running `%s`, will NOT be replaced",
		GlyphNotReplaced, result.Environment, result.CurrentTag)
}
