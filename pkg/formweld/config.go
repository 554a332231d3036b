package formweld

import (
	"errors"
	"os"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// DefaultRowLimit is the default cap on the number of data rows merged into
// one composite document. Exceeding it truncates the input, it never fails.
const DefaultRowLimit = 100

// Config contains all configuration options for the formweld engine
type Config struct {
	// RowLimit caps how many data rows a single merge may consume.
	RowLimit int `toml:"row_limit"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `toml:"log_level"`
	// MinConfidence is the acceptance threshold for automatic matches.
	MinConfidence float64 `toml:"min_confidence"`
	// ReviewConfidence flags accepted matches below this score for user review.
	ReviewConfidence float64 `toml:"review_confidence"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		RowLimit:         DefaultRowLimit,
		LogLevel:         "info",
		MinConfidence:    minMatchConfidence,
		ReviewConfidence: reviewConfidence,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// FORMWELD_ROW_LIMIT
	if val := os.Getenv("FORMWELD_ROW_LIMIT"); val != "" {
		if limit, err := strconv.Atoi(val); err == nil {
			config.RowLimit = limit
		}
	}

	// FORMWELD_LOG_LEVEL
	if val := os.Getenv("FORMWELD_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}

	// FORMWELD_MIN_CONFIDENCE
	if val := os.Getenv("FORMWELD_MIN_CONFIDENCE"); val != "" {
		if conf, err := strconv.ParseFloat(val, 64); err == nil {
			config.MinConfidence = conf
		}
	}

	// FORMWELD_REVIEW_CONFIDENCE
	if val := os.Getenv("FORMWELD_REVIEW_CONFIDENCE"); val != "" {
		if conf, err := strconv.ParseFloat(val, 64); err == nil {
			config.ReviewConfidence = conf
		}
	}

	return config
}

// LoadConfigFile reads a TOML configuration file and overlays it on the
// defaults. Unset fields keep their default values.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError("read", path, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, NewDocumentError("parse", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.RowLimit == 0 {
		config.RowLimit = defaults.RowLimit
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.MinConfidence == 0 {
		config.MinConfidence = defaults.MinConfidence
	}

	if config.ReviewConfidence == 0 {
		config.ReviewConfidence = defaults.ReviewConfidence
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RowLimit < 1 {
		return errors.New("row limit must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New("min confidence must be in [0,1]")
	}

	if c.ReviewConfidence < 0 || c.ReviewConfidence > 1 {
		return errors.New("review confidence must be in [0,1]")
	}

	return nil
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Update logger based on new config (outside the lock to avoid deadlock)
	UpdateLoggerFromConfig()
}
