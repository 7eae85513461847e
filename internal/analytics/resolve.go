package analytics

import (
	"net/url"

	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/kelseyhightower/envconfig"
)

// Env is a snapshot of the proxy's environment variables
type Env struct {
	Token     string `envconfig:"VERCEL_TOKEN"`
	ProjectID string `envconfig:"VERCEL_PROJECT_ID"`
	OrgID     string `envconfig:"VERCEL_ORG_ID"`
	TeamID    string `envconfig:"VERCEL_TEAM_ID"`
}

// EnvFromOS reads the current process environment; call it per request
func EnvFromOS() (Env, error) {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, err
	}
	return env, nil
}

// Config is the per-request upstream configuration
type Config struct {
	Token     string
	ProjectID string
	TeamID    string
}

// Resolve combines the environment with the query string. Environment values
// take precedence; the token is never read from the query.
func Resolve(env Env, query url.Values) (Config, error) {
	cfg := Config{
		Token:     env.Token,
		ProjectID: firstNonEmpty(env.ProjectID, query.Get("projectId")),
		TeamID:    firstNonEmpty(env.OrgID, env.TeamID, query.Get("teamId")),
	}

	if cfg.Token == "" {
		return Config{}, apperrors.NewConfigurationError(apperrors.CodeMissingToken, "Missing VERCEL_TOKEN env")
	}
	if cfg.ProjectID == "" {
		return Config{}, apperrors.NewConfigurationError(apperrors.CodeMissingProjectID, "Missing VERCEL_PROJECT_ID")
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
