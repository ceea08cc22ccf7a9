package policy

import (
	"testing"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name           string
		env            models.Environment
		currentTag     string
		releaseVersion string
		want           bool
	}{
		// dev (>=): anything at or above the current tag
		{
			name:           "dev equal version",
			env:            models.EnvDev,
			currentTag:     "2.4.1",
			releaseVersion: "2.4.1",
			want:           true,
		},
		{
			name:           "dev newer major",
			env:            models.EnvDev,
			currentTag:     "2.4.1",
			releaseVersion: "3.0.0",
			want:           true,
		},
		{
			name:           "dev older release",
			env:            models.EnvDev,
			currentTag:     "2.4.1",
			releaseVersion: "1.9.9",
			want:           false,
		},
		{
			name:           "dev prerelease release normalizes to build metadata",
			env:            models.EnvDev,
			currentTag:     "2.4.1",
			releaseVersion: "2.4.2-rc1",
			want:           true,
		},

		// sandbox (^): minor/patch within the same major
		{
			name:           "sandbox minor bump",
			env:            models.EnvSandbox,
			currentTag:     "2.4.1",
			releaseVersion: "2.5.0",
			want:           true,
		},
		{
			name:           "sandbox patch bump",
			env:            models.EnvSandbox,
			currentTag:     "2.4.1",
			releaseVersion: "2.4.2",
			want:           true,
		},
		{
			name:           "sandbox major bump",
			env:            models.EnvSandbox,
			currentTag:     "2.4.1",
			releaseVersion: "3.0.0",
			want:           false,
		},

		// production (~): patch within the same minor
		{
			name:           "production patch bump",
			env:            models.EnvProduction,
			currentTag:     "2.4.1",
			releaseVersion: "2.4.2",
			want:           true,
		},
		{
			name:           "production minor bump",
			env:            models.EnvProduction,
			currentTag:     "2.4.1",
			releaseVersion: "2.5.0",
			want:           false,
		},
		{
			name:           "production older patch",
			env:            models.EnvProduction,
			currentTag:     "2.4.1",
			releaseVersion: "2.4.0",
			want:           false,
		},

		// floating "latest" tags always give way
		{
			name:           "latest tag on production",
			env:            models.EnvProduction,
			currentTag:     "latest",
			releaseVersion: "0.0.1",
			want:           true,
		},
		{
			name:           "latest-suffixed tag on sandbox",
			env:            models.EnvSandbox,
			currentTag:     "latest-abc123",
			releaseVersion: "0.0.1",
			want:           true,
		},
		{
			name:           "Latest wrong case is not special",
			env:            models.EnvDev,
			currentTag:     "Latest",
			releaseVersion: "1.0.0",
			want:           false,
		},

		// non-semver, non-latest tags never promote
		{
			name:           "opaque sha tag",
			env:            models.EnvDev,
			currentTag:     "abc123def",
			releaseVersion: "9.9.9",
			want:           false,
		},
		{
			name:           "empty current tag",
			env:            models.EnvProduction,
			currentTag:     "",
			releaseVersion: "1.0.0",
			want:           false,
		},
		{
			name:           "non-semver release version",
			env:            models.EnvDev,
			currentTag:     "2.4.1",
			releaseVersion: "not-a-version",
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.env, tt.currentTag, tt.releaseVersion)
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if got.WillBeReplaced != tt.want {
				t.Errorf("Evaluate(%s, %q, %q).WillBeReplaced = %v, want %v",
					tt.env, tt.currentTag, tt.releaseVersion, got.WillBeReplaced, tt.want)
			}
			if got.Environment != tt.env || got.CurrentTag != tt.currentTag || got.ReleaseVersion != tt.releaseVersion {
				t.Errorf("Evaluate() evidence fields = %+v, want inputs echoed back", got)
			}
		})
	}
}

func TestEvaluateUnknownEnvironment(t *testing.T) {
	if _, err := Evaluate(models.Environment("staging"), "1.0.0", "1.0.1"); err == nil {
		t.Error("Evaluate() with unknown environment should return an error")
	}
}
