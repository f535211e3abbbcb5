package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()
	assert.Equal(t, 20.0, cfg.GetTunnelLength())
	assert.Equal(t, 10.0, cfg.GetTunnelWidth())
	assert.Equal(t, 8.0, cfg.GetTunnelHeight())
	assert.Equal(t, 1.1, cfg.GetSeedRadius())
	assert.Equal(t, 100, cfg.GetSeedPoints())
	assert.Equal(t, 0.0, cfg.GetStepLength())
	assert.Equal(t, 0.0, cfg.GetMaxTraceTime())
	assert.Equal(t, 0, cfg.GetSubdomains())
}

func TestLoadPartialConfig(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"tunnel_length": 30, "seed_points": 50}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 30.0, cfg.GetTunnelLength())
	assert.Equal(t, 50, cfg.GetSeedPoints())
	// Unset fields keep their defaults.
	assert.Equal(t, 10.0, cfg.GetTunnelWidth())
	assert.Equal(t, 1.1, cfg.GetSeedRadius())
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	path := writeConfig(t, "tuning.yaml", `{}`)
	_, err := LoadTuningConfig(path)
	assert.ErrorContains(t, err, ".json extension")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	path := writeConfig(t, "tuning.json", `{"tunnel_length": `)
	_, err := LoadTuningConfig(path)
	assert.ErrorContains(t, err, "parse config JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"zero tunnel dim", `{"tunnel_width": 0}`, "tunnel_width must be positive"},
		{"negative seed radius", `{"seed_radius": -1}`, "seed_radius must be positive"},
		{"zero seed points", `{"seed_points": 0}`, "seed_points must be at least 1"},
		{"negative step", `{"step_length": -0.1}`, "step_length must be non-negative"},
		{"negative trace time", `{"max_trace_time": -5}`, "max_trace_time must be non-negative"},
		{"zero subdomains", `{"subdomains": 0}`, "subdomains must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "tuning.json", tt.content)
			_, err := LoadTuningConfig(path)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
