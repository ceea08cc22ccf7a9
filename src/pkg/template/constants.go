package template

// ToolCommentSignature is the hidden marker embedded in every rendered
// report so re-runs can find and update the existing PR comment
const (
	ToolCommentSignature = `<!-- gitops-releasegate: auto-generated comment, please do not remove -->`

	GlyphReplaced    = "✅"
	GlyphNotReplaced = "❌"
	GlyphLookupError = "⚠️"
)
