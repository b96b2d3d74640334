package upstream

const defaultBaseURL = "http://127.0.0.1:1234"

// Config holds upstream endpoint parameters.
type Config struct {
	BaseURL string `json:"base_url,omitempty"`
}

// DefaultConfig returns the default upstream configuration.
func DefaultConfig() Config {
	return Config{BaseURL: defaultBaseURL}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BaseURL != "" {
		c.BaseURL = source.BaseURL
	}
}
