package runner

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
	"github.com/gh-nvat/gitops-releasegate/src/pkg/policy"
)

const (
	DefaultCluster = "main"
	DefaultService = "web"
	DefaultRegion  = "ap-northeast-1"
)

// LoadEnvironmentsConfig reads and validates the environments file. Every
// environment named in the file must exist in the promotion policy table;
// anything else is a configuration error and fatal to the run.
func LoadEnvironmentsConfig(path string) (*models.EnvironmentsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read environments config %s: %w", path, err)
	}

	var cfg models.EnvironmentsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environments config %s: %w", path, err)
	}

	for name := range cfg.Environments {
		if _, ok := policy.PolicyFor(models.Environment(name)); !ok {
			return nil, fmt.Errorf("unknown environment %q in %s", name, path)
		}
	}
	return &cfg, nil
}

// ResolveCredentials returns the effective credentials for env: the
// environments file first, then the RELEASEGATE_<ENV>_AWS_* environment
// variables for whatever the file left empty.
func ResolveCredentials(env models.Environment, cfg models.EnvironmentConfig) models.Credentials {
	creds := cfg.Credentials
	prefix := fmt.Sprintf("RELEASEGATE_%s_", strings.ToUpper(string(env)))
	if creds.AccessKeyID == "" {
		creds.AccessKeyID = os.Getenv(prefix + "AWS_ACCESS_KEY_ID")
	}
	if creds.SecretAccessKey == "" {
		creds.SecretAccessKey = os.Getenv(prefix + "AWS_SECRET_ACCESS_KEY")
	}
	if creds.Region == "" {
		creds.Region = os.Getenv(prefix + "AWS_REGION")
	}
	if creds.Region == "" {
		creds.Region = DefaultRegion
	}
	return creds
}

// QualifiedClusterService returns the environment-qualified cluster and
// service keys used for the image lookup (e.g. "production-main",
// "production-web"). Empty names fall back to the defaults.
func QualifiedClusterService(env models.Environment, cfg models.EnvironmentConfig) (string, string) {
	cluster := cfg.Cluster
	if cluster == "" {
		cluster = DefaultCluster
	}
	service := cfg.Service
	if service == "" {
		service = DefaultService
	}
	return fmt.Sprintf("%s-%s", env, cluster), fmt.Sprintf("%s-%s", env, service)
}
