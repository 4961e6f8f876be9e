package database

import (
	"homefinder/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectorSelection(t *testing.T) {
	tests := []struct {
		name   string
		cfg    config.DatabaseConfig
		envDB  string
		expect string
	}{
		{"default is mysql", config.DatabaseConfig{}, "", "mysql"},
		{"env picks backend", config.DatabaseConfig{}, "postgres", "postgres"},
		{"config wins over env", config.DatabaseConfig{Type: "sqlite"}, "postgres", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DB_TYPE", tt.envDB)
			d, err := Dialector(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, d.Name())
		})
	}
}

func TestDialectorRejectsUnknownType(t *testing.T) {
	_, err := Dialector(config.DatabaseConfig{Type: "oracle"})
	assert.Error(t, err)
}
