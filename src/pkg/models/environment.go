package models

// Environment is a named deployment target. The set is closed and known at
// compile time; see the policy package for the promotion rule attached to
// each environment.
type Environment string

const (
	EnvDev        Environment = "dev"
	EnvSandbox    Environment = "sandbox"
	EnvProduction Environment = "production"
)

// CurrentImage is the image currently running in one environment, as
// resolved by the image lookup collaborator.
type CurrentImage struct {
	// Image is the full image reference (e.g. "1234.dkr.ecr.../my-app:2.4.1")
	Image string `json:"image"`
	// Tag is the substring after the first ":" in the image reference,
	// empty if the reference carries no tag
	Tag string `json:"tag"`
}

// Credentials is the per-environment access configuration handed to the
// image lookup collaborator. Opaque to the gate logic.
type Credentials struct {
	AccessKeyID     string `yaml:"accessKeyId" json:"-"`
	SecretAccessKey string `yaml:"secretAccessKey" json:"-"`
	Region          string `yaml:"region" json:"region"`
}

// Present reports whether the key pair is supplied and non-empty. An
// environment without present credentials is skipped for the run.
func (c Credentials) Present() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
