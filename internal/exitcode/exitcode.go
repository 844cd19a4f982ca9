// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, an unknown task or an unknown category.
	UserError = 1

	// AuthError indicates missing or unusable Google credentials.
	AuthError = 2

	// ConfigError indicates an unreadable or unwritable config.yaml.
	ConfigError = 2

	// BackendError indicates a storage or Google API failure.
	BackendError = 3
)
