package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		SchemaPath:         "survey.hcl",
		LogFormat:          "text",
		LogLevel:           "info",
		MaxRepeatInstances: 50,
	}
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "upper case level is normalised", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
		{name: "missing schema", mutate: func(c *Config) { c.SchemaPath = "" }, wantErr: "SchemaPath is a required configuration field"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: `invalid LogFormat "xml"`},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: `invalid LogLevel "trace"`},
		{name: "zero repeats", mutate: func(c *Config) { c.MaxRepeatInstances = 0 }, wantErr: "MaxRepeatInstances must be at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)

			got, err := NewConfig(cfg)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "survey.hcl", got.SchemaPath)
		})
	}
}

func TestNewConfig_NormalisesCase(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.LogFormat = "JSON"
	cfg.LogLevel = "Warn"

	got, err := NewConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "json", got.LogFormat)
	assert.Equal(t, "warn", got.LogLevel)
}
