// Package config defines the rekabot configuration schema and its JSON
// loader. The file lives at ~/.rekabot/config.json; JSON keys use camelCase.
package config

import "os"

// ProviderConfig holds the LLM backend settings.
type ProviderConfig struct {
	APIKey      string  `json:"apiKey"`
	APIBase     string  `json:"apiBase,omitempty"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"maxTokens"`
	Temperature float64 `json:"temperature"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Port int `json:"port"`
}

// WebSearchConfig configures the web_search executor.
type WebSearchConfig struct {
	APIKey     string `json:"apiKey"` // Brave Search API key
	MaxResults int    `json:"maxResults"`
}

// WebFetchConfig configures the scrape_webpage executor.
type WebFetchConfig struct {
	MaxChars int `json:"maxChars"`
}

// ToolsConfig holds dispatcher and executor settings.
type ToolsConfig struct {
	TimeoutSeconds int `json:"timeoutSeconds"` // per-dispatch timeout
	Web            struct {
		Search WebSearchConfig `json:"search"`
		Fetch  WebFetchConfig  `json:"fetch"`
	} `json:"web"`
}

// RetrievalConfig tunes document grounding.
type RetrievalConfig struct {
	ChunkSize int `json:"chunkSize"`
	Overlap   int `json:"overlap"`
	TopK      int `json:"topK"`
}

// Config is the complete rekabot configuration.
type Config struct {
	Provider  ProviderConfig  `json:"provider"`
	Server    ServerConfig    `json:"server"`
	Tools     ToolsConfig     `json:"tools"`
	Retrieval RetrievalConfig `json:"retrieval"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	cfg := Config{
		Provider: ProviderConfig{
			Model:       "gemini-2.0-flash",
			MaxTokens:   4096,
			Temperature: 0.7,
		},
		Server: ServerConfig{Port: 8080},
		Retrieval: RetrievalConfig{
			ChunkSize: 1000,
			Overlap:   200,
			TopK:      3,
		},
	}
	cfg.Tools.TimeoutSeconds = 8
	cfg.Tools.Web.Search.MaxResults = 5
	cfg.Tools.Web.Fetch.MaxChars = 8000
	return cfg
}

// EffectiveAPIKey returns the provider key, letting the GEMINI_API_KEY
// environment variable override the file.
func (c *Config) EffectiveAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return c.Provider.APIKey
}

// EffectiveSearchKey returns the Brave key, letting BRAVE_API_KEY override
// the file.
func (c *Config) EffectiveSearchKey() string {
	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		return key
	}
	return c.Tools.Web.Search.APIKey
}
