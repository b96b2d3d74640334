package transcribe

const defaultInferenceURL = "http://127.0.0.1:8080/inference"

// Config holds the speech inference endpoint parameters.
type Config struct {
	URL string `json:"url,omitempty"`
}

// DefaultConfig returns the default transcription configuration.
func DefaultConfig() Config {
	return Config{URL: defaultInferenceURL}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.URL != "" {
		c.URL = source.URL
	}
}
