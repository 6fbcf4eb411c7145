package config

const (
	// DefaultAPIBaseURL is the production backend.
	DefaultAPIBaseURL = "https://api.repapp.dev/v1"

	// DefaultRateLimit is requests per minute against the backend.
	DefaultRateLimit = 60

	// DefaultPageSize is the catalog download page size.
	DefaultPageSize = 50
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		API: APIConfig{
			BaseURL:   DefaultAPIBaseURL,
			RateLimit: DefaultRateLimit,
		},

		Sync: SyncConfig{
			PageSize: DefaultPageSize,
		},
	}
}
