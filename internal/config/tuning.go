// Package config loads optional tuning parameters for the placement and
// post-processing pipelines from a JSON file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig holds optional overrides for pipeline parameters. All fields
// are pointers so a partial JSON file only overrides what it names; the Get*
// methods supply defaults for anything left nil.
type TuningConfig struct {
	// Tunnel dimensions in meters.
	TunnelLength *float64 `json:"tunnel_length,omitempty"`
	TunnelWidth  *float64 `json:"tunnel_width,omitempty"`
	TunnelHeight *float64 `json:"tunnel_height,omitempty"`

	// Streamline tracing params.
	SeedRadius   *float64 `json:"seed_radius,omitempty"`
	SeedPoints   *int     `json:"seed_points,omitempty"`
	StepLength   *float64 `json:"step_length,omitempty"` // 0 means derive from domain size
	MaxTraceTime *float64 `json:"max_trace_time,omitempty"`

	// Solver decomposition override. 0 means derive from the machine group.
	Subdomains *int `json:"subdomains,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields nil, so every
// getter falls back to its default.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that any set values are physically sensible.
func (c *TuningConfig) Validate() error {
	for name, v := range map[string]*float64{
		"tunnel_length": c.TunnelLength,
		"tunnel_width":  c.TunnelWidth,
		"tunnel_height": c.TunnelHeight,
		"seed_radius":   c.SeedRadius,
	} {
		if v != nil && *v <= 0 {
			return fmt.Errorf("%s must be positive, got %g", name, *v)
		}
	}
	if c.SeedPoints != nil && *c.SeedPoints < 1 {
		return fmt.Errorf("seed_points must be at least 1, got %d", *c.SeedPoints)
	}
	if c.StepLength != nil && *c.StepLength < 0 {
		return fmt.Errorf("step_length must be non-negative, got %g", *c.StepLength)
	}
	if c.MaxTraceTime != nil && *c.MaxTraceTime < 0 {
		return fmt.Errorf("max_trace_time must be non-negative, got %g", *c.MaxTraceTime)
	}
	if c.Subdomains != nil && *c.Subdomains < 1 {
		return fmt.Errorf("subdomains must be at least 1, got %d", *c.Subdomains)
	}
	return nil
}

// GetTunnelLength returns the tunnel length or the default.
func (c *TuningConfig) GetTunnelLength() float64 {
	if c.TunnelLength == nil {
		return 20
	}
	return *c.TunnelLength
}

// GetTunnelWidth returns the tunnel width or the default.
func (c *TuningConfig) GetTunnelWidth() float64 {
	if c.TunnelWidth == nil {
		return 10
	}
	return *c.TunnelWidth
}

// GetTunnelHeight returns the tunnel height or the default.
func (c *TuningConfig) GetTunnelHeight() float64 {
	if c.TunnelHeight == nil {
		return 8
	}
	return *c.TunnelHeight
}

// GetSeedRadius returns the streamline seed sphere radius or the default.
func (c *TuningConfig) GetSeedRadius() float64 {
	if c.SeedRadius == nil {
		return 1.1
	}
	return *c.SeedRadius
}

// GetSeedPoints returns the streamline seed count or the default.
func (c *TuningConfig) GetSeedPoints() int {
	if c.SeedPoints == nil {
		return 100
	}
	return *c.SeedPoints
}

// GetStepLength returns the integration step length, 0 meaning auto.
func (c *TuningConfig) GetStepLength() float64 {
	if c.StepLength == nil {
		return 0
	}
	return *c.StepLength
}

// GetMaxTraceTime returns the trace time limit, 0 meaning all time steps.
func (c *TuningConfig) GetMaxTraceTime() float64 {
	if c.MaxTraceTime == nil {
		return 0
	}
	return *c.MaxTraceTime
}

// GetSubdomains returns the decomposition override, 0 meaning derive it.
func (c *TuningConfig) GetSubdomains() int {
	if c.Subdomains == nil {
		return 0
	}
	return *c.Subdomains
}
