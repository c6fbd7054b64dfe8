package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSimConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		env         map[string]string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *SimConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
tps: 30
maxFrameTime: 0.5
pathCacheCapacity: 8
groundLayer: floor
mapPath: data/maps/a.yaml
assetsPath: data/a.yaml
logLevel: debug
verbose: true
`,
			validate: func(t *testing.T, cfg *SimConfig) {
				assert.Equal(t, 30, cfg.TPS)
				assert.Equal(t, 0.5, cfg.MaxFrameTime)
				assert.Equal(t, 8, cfg.PathCacheCapacity)
				assert.Equal(t, "floor", cfg.GroundLayer)
				assert.Equal(t, "data/maps/a.yaml", cfg.MapPath)
				assert.True(t, cfg.Verbose)
				assert.InDelta(t, 1.0/30, cfg.Step(), 1e-12)
			},
		},
		{
			name:        "missing fields keep defaults",
			yamlContent: "verbose: false\n",
			validate: func(t *testing.T, cfg *SimConfig) {
				assert.Equal(t, DefaultSimConfig(), *cfg)
			},
		},
		{
			name:        "environment overrides file",
			yamlContent: "tps: 30\ngroundLayer: floor\n",
			env: map[string]string{
				"SIMCORE_TPS":           "120",
				"SIMCORE_DEBUG_OVERLAY": "true",
			},
			validate: func(t *testing.T, cfg *SimConfig) {
				assert.Equal(t, 120, cfg.TPS)
				assert.True(t, cfg.DebugOverlay)
				assert.Equal(t, "floor", cfg.GroundLayer)
			},
		},
		{
			name:        "non-positive tps",
			yamlContent: "tps: 0\n",
			wantErr:     true,
			errContains: "tps must be positive",
		},
		{
			name:        "frame clamp shorter than a tick",
			yamlContent: "tps: 10\nmaxFrameTime: 0.05\n",
			wantErr:     true,
			errContains: "shorter than one tick",
		},
		{
			name:        "malformed yaml",
			yamlContent: "tps: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse sim config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeYAML(t, "sim.yaml", tt.yamlContent)

			cfg, err := LoadSimConfig(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadSimConfigMissingFile(t *testing.T) {
	_, err := LoadSimConfig("does/not/exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read sim config")
}
