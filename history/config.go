package history

const (
	defaultPoolSize    = 10
	defaultMaxOverflow = 20
)

// Config holds history store connection parameters. An empty DSN selects
// the in-memory backend.
type Config struct {
	DSN         string `json:"dsn,omitempty"`
	PoolSize    int    `json:"pool_size,omitempty"`
	MaxOverflow int    `json:"max_overflow,omitempty"`
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() Config {
	return Config{
		PoolSize:    defaultPoolSize,
		MaxOverflow: defaultMaxOverflow,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.DSN != "" {
		c.DSN = source.DSN
	}
	if source.PoolSize > 0 {
		c.PoolSize = source.PoolSize
	}
	if source.MaxOverflow > 0 {
		c.MaxOverflow = source.MaxOverflow
	}
}
