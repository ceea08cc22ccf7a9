package policy

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	log "github.com/sirupsen/logrus"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

var logger *log.Entry = log.New().WithFields(log.Fields{
	"package": "policy",
})

// latestTagPrefix marks tags that are always superseded by any release
// (e.g. "latest", "latest-abc123"). Case-sensitive prefix match.
const latestTagPrefix = "latest"

// Evaluate decides whether releaseVersion qualifies to replace currentTag
// in env under that environment's promotion policy. It returns an error
// only for an environment missing from the policy table; callers must only
// pass environments they obtained from Environments().
func Evaluate(env models.Environment, currentTag, releaseVersion string) (models.GateResult, error) {
	comparator, ok := PolicyFor(env)
	if !ok {
		return models.GateResult{}, fmt.Errorf("no promotion policy for environment %q", env)
	}

	replaced := satisfiesPolicyRange(comparator, currentTag, releaseVersion) ||
		isAlwaysReplaceable(currentTag)

	logger.WithField("env", env).
		WithField("currentTag", currentTag).
		WithField("releaseVersion", releaseVersion).
		WithField("willBeReplaced", replaced).
		Debug("Evaluated deployment gate")

	return models.GateResult{
		Environment:    env,
		CurrentTag:     currentTag,
		ReleaseVersion: releaseVersion,
		WillBeReplaced: replaced,
	}, nil
}

// satisfiesPolicyRange reports whether the normalized candidate satisfies
// the range formed by the policy comparator and the current tag
// (e.g. "~" + "2.4.1" -> "~2.4.1"). A current tag or candidate that does
// not parse as semver never satisfies the range.
func satisfiesPolicyRange(comparator Comparator, currentTag, releaseVersion string) bool {
	if _, err := semver.NewVersion(currentTag); err != nil {
		return false
	}

	constraint, err := semver.NewConstraint(string(comparator) + currentTag)
	if err != nil {
		logger.WithField("constraint", string(comparator)+currentTag).
			WithField("error", err).
			Warn("Current tag parsed as semver but constraint did not; treating as not promotable")
		return false
	}

	candidate, err := semver.NewVersion(NormalizeReleaseVersion(releaseVersion))
	if err != nil {
		return false
	}

	return constraint.Check(candidate)
}

// isAlwaysReplaceable reports whether the current tag is a floating tag
// that any release may replace, regardless of policy.
func isAlwaysReplaceable(currentTag string) bool {
	return strings.HasPrefix(currentTag, latestTagPrefix)
}
