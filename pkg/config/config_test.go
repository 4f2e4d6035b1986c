package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_DatabaseConfig_Validate(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         DatabaseConfig
		expectError bool
	}{
		{name: "sqlite path", cfg: DatabaseConfig{Driver: DriverSQLite, URL: "data/inventory.db"}},
		{name: "sqlite without path", cfg: DatabaseConfig{Driver: DriverSQLite}, expectError: true},
		{name: "postgres url", cfg: DatabaseConfig{Driver: DriverPostgres, URL: "postgresql://u:p@localhost/db"}},
		{name: "postgres bad scheme", cfg: DatabaseConfig{Driver: DriverPostgres, URL: "http://localhost"}, expectError: true},
		{name: "memory", cfg: DatabaseConfig{Driver: DriverMemory}},
		{name: "unknown", cfg: DatabaseConfig{Driver: "oracle", URL: "x"}, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func Test_MaskURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{url: "", expected: "<not configured>"},
		{url: "postgres://user:pw@db:5432/inventory", expected: "****@db:5432/inventory"},
		{url: "postgres://db/inventory", expected: "****"},
		{url: "data/inventory.db", expected: "data/inventory.db"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.expected, MaskURL(tc.url))
		})
	}
}

func Test_PProfConfig_Validate(t *testing.T) {
	assert.NoError(t, (&PProfConfig{}).Validate())
	assert.NoError(t, (&PProfConfig{Enabled: true, Addr: "127.0.0.1:6060"}).Validate())
	assert.Error(t, (&PProfConfig{Enabled: true}).Validate())
	assert.Error(t, (&PProfConfig{Enabled: true, Addr: "6060"}).Validate())
}

func Test_ShutdownConfig_Validate(t *testing.T) {
	assert.Error(t, (&ShutdownConfig{}).Validate())
	assert.NoError(t, (&ShutdownConfig{Timeout: 10 * time.Second}).Validate())
	assert.Error(t, (&ShutdownConfig{Timeout: time.Hour}).Validate())
}
