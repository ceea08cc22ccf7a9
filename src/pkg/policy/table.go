package policy

import "github.com/gh-nvat/gitops-releasegate/src/pkg/models"

// Comparator is a semver range operator prefixed to the currently-deployed
// tag to form the promotion constraint for an environment.
type Comparator string

const (
	// ComparatorAtLeast promotes any candidate at or above the current tag
	ComparatorAtLeast Comparator = ">="
	// ComparatorCaret promotes minor/patch bumps within the same major
	ComparatorCaret Comparator = "^"
	// ComparatorTilde promotes patch bumps within the same minor
	ComparatorTilde Comparator = "~"
)

type policyEntry struct {
	env        models.Environment
	comparator Comparator
}

// promotionPolicies is the process-wide environment -> promotion rule table.
// The slice (not a map) keeps report ordering deterministic: environments
// are always iterated and reported in this order.
var promotionPolicies = []policyEntry{
	{models.EnvDev, ComparatorAtLeast},
	{models.EnvSandbox, ComparatorCaret},
	{models.EnvProduction, ComparatorTilde},
}

// PolicyFor returns the promotion comparator for env, and false if env is
// not a configured environment.
func PolicyFor(env models.Environment) (Comparator, bool) {
	for _, e := range promotionPolicies {
		if e.env == env {
			return e.comparator, true
		}
	}
	return "", false
}

// Environments returns all configured environments in table order.
func Environments() []models.Environment {
	envs := make([]models.Environment, 0, len(promotionPolicies))
	for _, e := range promotionPolicies {
		envs = append(envs, e.env)
	}
	return envs
}
