package models

// EnvironmentsConfig is the on-disk environment configuration
// (releasegate.yaml): per environment, where its workload runs and how to
// reach it. Loaded once at startup, read-only afterwards.
type EnvironmentsConfig struct {
	Environments map[string]EnvironmentConfig `yaml:"environments"`
}

// EnvironmentConfig describes one environment's workload location plus its
// lookup credentials. Cluster and service are the bare names; the runner
// qualifies them with the environment name before the lookup.
type EnvironmentConfig struct {
	Cluster     string `yaml:"cluster"`
	Service     string `yaml:"service"`
	Credentials `yaml:",inline"`
}
