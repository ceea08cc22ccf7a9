package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gh-nvat/gitops-releasegate/src/pkg/models"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "releasegate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEnvironmentsConfig(t *testing.T) {
	path := writeConfig(t, `
environments:
  dev:
    cluster: core
    service: api
    region: us-east-1
    accessKeyId: AKIADEV
    secretAccessKey: devsecret
  production:
    cluster: core
    service: api
`)

	cfg, err := LoadEnvironmentsConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Environments, 2)

	dev := cfg.Environments["dev"]
	assert.Equal(t, "core", dev.Cluster)
	assert.Equal(t, "api", dev.Service)
	assert.Equal(t, "us-east-1", dev.Region)
	assert.Equal(t, "AKIADEV", dev.AccessKeyID)
	assert.True(t, dev.Credentials.Present())

	prod := cfg.Environments["production"]
	assert.False(t, prod.Credentials.Present())
}

func TestLoadEnvironmentsConfigUnknownEnvironment(t *testing.T) {
	path := writeConfig(t, `
environments:
  staging:
    cluster: core
`)

	_, err := LoadEnvironmentsConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "staging")
}

func TestLoadEnvironmentsConfigMissingFile(t *testing.T) {
	_, err := LoadEnvironmentsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadEnvironmentsConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "environments: [not: a: map")
	_, err := LoadEnvironmentsConfig(path)
	require.Error(t, err)
}

func TestResolveCredentialsEnvFallback(t *testing.T) {
	t.Setenv("RELEASEGATE_SANDBOX_AWS_ACCESS_KEY_ID", "AKIAENV")
	t.Setenv("RELEASEGATE_SANDBOX_AWS_SECRET_ACCESS_KEY", "envsecret")
	t.Setenv("RELEASEGATE_SANDBOX_AWS_REGION", "eu-west-1")

	creds := ResolveCredentials(models.EnvSandbox, models.EnvironmentConfig{})
	assert.Equal(t, "AKIAENV", creds.AccessKeyID)
	assert.Equal(t, "envsecret", creds.SecretAccessKey)
	assert.Equal(t, "eu-west-1", creds.Region)
	assert.True(t, creds.Present())
}

func TestResolveCredentialsFilePrecedence(t *testing.T) {
	t.Setenv("RELEASEGATE_DEV_AWS_ACCESS_KEY_ID", "AKIAENV")

	cfg := models.EnvironmentConfig{
		Credentials: models.Credentials{AccessKeyID: "AKIAFILE", SecretAccessKey: "filesecret"},
	}
	creds := ResolveCredentials(models.EnvDev, cfg)
	assert.Equal(t, "AKIAFILE", creds.AccessKeyID, "file value wins over env var")
	assert.Equal(t, DefaultRegion, creds.Region, "region falls back to default")
}

func TestQualifiedClusterService(t *testing.T) {
	cluster, service := QualifiedClusterService(models.EnvDev, models.EnvironmentConfig{Cluster: "core", Service: "api"})
	assert.Equal(t, "dev-core", cluster)
	assert.Equal(t, "dev-api", service)

	cluster, service = QualifiedClusterService(models.EnvProduction, models.EnvironmentConfig{})
	assert.Equal(t, "production-"+DefaultCluster, cluster)
	assert.Equal(t, "production-"+DefaultService, service)
}
