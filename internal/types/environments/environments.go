package environments

import "strings"

type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
	Staging     Environment = "staging"
	Test        Environment = "test"
)

// Parse maps an APP_ENV value onto a known environment, defaulting to development.
func Parse(s string) Environment {
	switch env := Environment(strings.ToLower(strings.TrimSpace(s))); env {
	case Production, Staging, Test, Development:
		return env
	case "":
		return Development
	default:
		return env
	}
}
