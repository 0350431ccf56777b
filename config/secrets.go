package config

import (
	"github.com/relloyd/deltapipe/constants"
	"github.com/relloyd/deltapipe/helper"
)

// SecretStore provides access to externally mounted credentials.
type SecretStore interface {
	// Get returns the secret for key or an error if it is not set.
	Get(key string) (string, error)
}

// EnvSecretStore reads secrets from environment variables, which is how the orchestrator mounts them.
type EnvSecretStore struct{}

func (EnvSecretStore) Get(key string) (string, error) {
	return helper.GetEnvVar(key, true)
}

// Secrets holds the two credentials needed by a run.
type Secrets struct {
	AnnotationToken string `errorTxt:"secret SA_TEAM_TOKEN" mandatory:"yes"`
	WarehouseToken  string `errorTxt:"secret DB_ACCESS_TOKEN" mandatory:"yes"`
}

// String never prints the token values.
func (s Secrets) String() string {
	return "Secrets{AnnotationToken: " + redact(s.AnnotationToken) + ", WarehouseToken: " + redact(s.WarehouseToken) + "}"
}

func redact(s string) string {
	if s == "" {
		return "<unset>"
	}
	return "xxxxx"
}

// LoadSecrets fetches both tokens from the store.
// Missing values are left empty so that Validate can report them with everything else.
func LoadSecrets(store SecretStore) Secrets {
	s := Secrets{}
	s.AnnotationToken, _ = store.Get(constants.EnvVarAnnotationToken)
	s.WarehouseToken, _ = store.Get(constants.EnvVarWarehouseToken)
	return s
}
