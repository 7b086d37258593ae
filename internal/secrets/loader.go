// Package secrets resolves secret values (the backend bearer token,
// the gemini api key) from files, environment variables or inline
// configuration.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes where a secret value may come from. Resolution
// order is File, then Env, then Value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// File points to a file containing the secret value.
	File string
	// Env names an environment variable carrying the secret value.
	Env string
	// Value is an inline secret value provided via configuration or flags.
	Value string
}

// Load resolves the secret from the first populated source. The
// returned value is always trimmed; a source that resolves to only
// whitespace is an error, not a fallthrough.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	if file := strings.TrimSpace(src.File); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}

		return secret, nil
	}

	if env := strings.TrimSpace(src.Env); env != "" {
		if raw, ok := os.LookupEnv(env); ok {
			secret := strings.TrimSpace(raw)
			if secret == "" {
				return "", fmt.Errorf("%s environment variable %s is empty", name, env)
			}

			return secret, nil
		}
	}

	if secret := strings.TrimSpace(src.Value); secret != "" {
		return secret, nil
	}

	return "", fmt.Errorf("%s is not configured", name)
}
