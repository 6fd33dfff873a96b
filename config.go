package arraysort

import (
	"go.uber.org/zap"
)

// Config holds tuning settings for the sort engine
type Config struct {
	MinMerge         int         // arrays shorter than this are sorted with binary insertion sort alone
	MinGallop        int         // initial number of consecutive wins before a merge switches to galloping
	InitialTmpLength int         // initial capacity of the merge buffer, grown on demand
	MaxLength        int64       // largest snapshot the collector will allocate
	Logger           *zap.Logger // debug logging of sort sessions; nil disables logging
}

// DefaultConfig returns the default configuration options used if none provided
func DefaultConfig() *Config {
	return &Config{
		MinMerge:         32,
		MinGallop:        7,
		InitialTmpLength: 256,
		MaxLength:        1<<32 - 1,
		Logger:           zap.NewNop(),
	}
}

// mergeConfig takes a provided config and replaces any values not set with the defaults.
// The caller's Config is not modified.
func mergeConfig(c *Config) (*Config, error) {
	d := DefaultConfig()
	if c == nil {
		return d, nil
	}
	merged := *c
	if merged.MinMerge == 0 {
		merged.MinMerge = d.MinMerge
	}
	if merged.MinGallop == 0 {
		merged.MinGallop = d.MinGallop
	}
	if merged.InitialTmpLength == 0 {
		merged.InitialTmpLength = d.InitialTmpLength
	}
	if merged.MaxLength == 0 {
		merged.MaxLength = d.MaxLength
	}
	if merged.Logger == nil {
		merged.Logger = d.Logger
	}
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (c *Config) validate() error {
	if c.MinMerge < 2 {
		return &ConfigError{Field: "MinMerge", Value: c.MinMerge, Reason: "must be at least 2"}
	}
	if c.MinGallop < 1 {
		return &ConfigError{Field: "MinGallop", Value: c.MinGallop, Reason: "must be positive"}
	}
	if c.InitialTmpLength < 0 {
		return &ConfigError{Field: "InitialTmpLength", Value: c.InitialTmpLength, Reason: "must not be negative"}
	}
	if c.MaxLength < 0 {
		return &ConfigError{Field: "MaxLength", Value: c.MaxLength, Reason: "must not be negative"}
	}
	return nil
}
