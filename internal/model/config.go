package model

import "time"

// Config holds the full runtime configuration
type Config struct {
	HTTP   HTTPConfig    `yaml:"http" mapstructure:"http"`
	Scrape ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Search SearchConfig  `yaml:"search" mapstructure:"search"`
	LLM    LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Cache  CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Output OutputConfig  `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the direct-fetch acquisition strategy
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ScrapeConfig controls the acquisition chain around the HTTP fetch
type ScrapeConfig struct {
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	BrowserWait   time.Duration `yaml:"browser_wait" mapstructure:"browser_wait"`   // settle delay after page load
	BrowserLimit  time.Duration `yaml:"browser_limit" mapstructure:"browser_limit"` // overall browser render budget
}

// SearchConfig controls the evidence-search client
type SearchConfig struct {
	APIURL       string        `yaml:"api_url" mapstructure:"api_url"`
	APIKey       string        `yaml:"-" mapstructure:"-"` // From BRAVE_API_KEY, never persisted
	MaxResults   int           `yaml:"max_results" mapstructure:"max_results"`
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
	RetryDelay   time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	CallInterval time.Duration `yaml:"call_interval" mapstructure:"call_interval"`
}

// LLMConfig selects and configures the text-generation oracle
type LLMConfig struct {
	Provider    string        `yaml:"provider" mapstructure:"provider"`
	Model       string        `yaml:"model" mapstructure:"model"`
	APIKey      string        `yaml:"-" mapstructure:"-"` // From env, never persisted
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Temperature float32       `yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// CacheConfig controls the per-process page and query caches
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	File     string `yaml:"file" mapstructure:"file"`
	JSONPath string `yaml:"json_path" mapstructure:"json_path"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
			MaxBodyBytes: 4_000_000,
		},
		Scrape: ScrapeConfig{
			RespectRobots: false,
			BrowserWait:   5 * time.Second,
			BrowserLimit:  60 * time.Second,
		},
		Search: SearchConfig{
			APIURL:       "https://api.search.brave.com/res/v1/web/search",
			MaxResults:   5,
			Timeout:      10 * time.Second,
			MaxRetries:   3,
			RetryDelay:   10 * time.Second,
			CallInterval: 1500 * time.Millisecond,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     60 * time.Second,
			Temperature: 0.1,
			MaxTokens:   2000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		Output: OutputConfig{
			Dir:  "reports",
			File: "report.md",
		},
	}
}
