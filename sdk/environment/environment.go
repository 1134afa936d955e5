// Package environment provides utilities for loading configuration from
// environment variables, with optional namespacing and defaults.
package environment

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file in the working directory.
// Variables already present in the environment are not overwritten.
func LoadEnv() error {
	return godotenv.Load()
}

// GetEnvKeyPrefix joins a namespace prefix and a key with an underscore.
// An empty prefix returns the key unchanged.
//
// Example:
//
//	GetEnvKeyPrefix("TASMAG", "PORT") // "TASMAG_PORT"
func GetEnvKeyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}
