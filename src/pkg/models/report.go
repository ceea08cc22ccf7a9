package models

import "time"

// GateResult is the gate evaluator's output for one environment. When the
// image lookup for the environment failed, LookupError carries the failure
// and the gate fields are zero.
type GateResult struct {
	Environment    Environment `json:"environment"`
	CurrentTag     string      `json:"currentTag,omitempty"`
	ReleaseVersion string      `json:"releaseVersion,omitempty"`
	WillBeReplaced bool        `json:"willBeReplaced"`
	LookupError    string      `json:"lookupError,omitempty"`
}

// Failed reports whether this entry is a lookup-failure marker rather than
// an evaluated gate decision.
func (r GateResult) Failed() bool {
	return r.LookupError != ""
}

// Report is the run's complete result: one entry per active environment,
// in policy-table order. Immutable once assembled.
type Report struct {
	ReleaseVersion string       `json:"releaseVersion"`
	Timestamp      time.Time    `json:"timestamp"`
	Results        []GateResult `json:"results"`
}
