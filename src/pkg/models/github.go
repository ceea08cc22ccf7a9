package models

// PullRequest holds the subset of GitHub PR data the runner needs
type PullRequest struct {
	Number  int
	State   string
	BaseRef string
	HeadSHA string
}

// Comment represents a GitHub issue/PR comment
type Comment struct {
	ID   int64
	Body string
}
