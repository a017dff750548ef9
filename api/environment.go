package api

import "fmt"

// Environment selects which platform origin API calls are issued against.
type Environment string

const (
	// EnvProduction targets the production API origin
	EnvProduction Environment = "production"
	// EnvStaging targets the staging API origin
	EnvStaging Environment = "staging"
	// EnvDevelopment targets the development API origin
	EnvDevelopment Environment = "development"
)

var environmentOrigins = map[Environment]string{
	EnvProduction:  "https://api.skylift.io",
	EnvStaging:     "https://stage-api.skylift.io",
	EnvDevelopment: "https://dev-api.skylift.io",
}

// BaseURL returns the fixed origin for the environment.
func (e Environment) BaseURL() (string, error) {
	origin, ok := environmentOrigins[e]
	if !ok {
		return "", fmt.Errorf("unknown environment %q", string(e))
	}
	return origin, nil
}

// Valid reports whether the environment is one of the three known selectors.
func (e Environment) Valid() bool {
	_, ok := environmentOrigins[e]
	return ok
}
