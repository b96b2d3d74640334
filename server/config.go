package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/june-assistant/relay/history"
	"github.com/june-assistant/relay/transcribe"
	"github.com/june-assistant/relay/upstream"
)

const (
	defaultAddr      = ":8000"
	defaultStaticDir = "static"
)

// Config holds initialization parameters for all server subsystems. Each
// subsystem section delegates to that subsystem's config-driven constructor.
type Config struct {
	Addr         string `json:"addr,omitempty"`
	StaticDir    string `json:"static_dir,omitempty"`
	CORSOrigins  string `json:"cors_origins,omitempty"`
	SystemPrompt string `json:"system_prompt,omitempty"`

	Upstream    upstream.Config   `json:"upstream"`
	History     history.Config    `json:"history"`
	Transcriber transcribe.Config `json:"transcriber"`
}

// DefaultConfig returns a Config with sensible defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Addr:        defaultAddr,
		StaticDir:   defaultStaticDir,
		CORSOrigins: "*",
		Upstream:    upstream.DefaultConfig(),
		History:     history.DefaultConfig(),
		Transcriber: transcribe.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Upstream.Merge(&source.Upstream)
	c.History.Merge(&source.History)
	c.Transcriber.Merge(&source.Transcriber)

	if source.Addr != "" {
		c.Addr = source.Addr
	}
	if source.StaticDir != "" {
		c.StaticDir = source.StaticDir
	}
	if source.CORSOrigins != "" {
		c.CORSOrigins = source.CORSOrigins
	}
	if source.SystemPrompt != "" {
		c.SystemPrompt = source.SystemPrompt
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

// Origins parses the CORS origin list: "*" (or empty) allows any origin,
// otherwise a comma-separated list.
func (c *Config) Origins() []string {
	trimmed := strings.TrimSpace(c.CORSOrigins)
	if trimmed == "" || trimmed == "*" {
		return []string{"*"}
	}

	var origins []string
	for _, origin := range strings.Split(trimmed, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
