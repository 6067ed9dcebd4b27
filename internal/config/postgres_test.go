package config

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    string
		wantErr string
	}{
		{
			name: "all fields",
			env: map[string]string{
				"POSTGRES_USER":     "e2e",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "results",
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_PORT":     "6543",
				"POSTGRES_SSLMODE":  "require",
			},
			want: "host='db' port='6543' user='e2e' dbname='results' sslmode='require' password='secret'",
		},
		{
			name: "defaults port and sslmode, no password",
			env: map[string]string{
				"POSTGRES_USER":     "e2e",
				"POSTGRES_DB":       "results",
				"POSTGRES_HOSTNAME": "localhost",
			},
			want: "host='localhost' port='5432' user='e2e' dbname='results' sslmode='disable'",
		},
		{
			name: "password with space, quote and backslash",
			env: map[string]string{
				"POSTGRES_USER":     "e2e",
				"POSTGRES_PASSWORD": `it's a p\ss`,
				"POSTGRES_DB":       "results",
				"POSTGRES_HOSTNAME": "db",
			},
			want: `host='db' port='5432' user='e2e' dbname='results' sslmode='disable' password='it\'s a p\\ss'`,
		},
		{
			name:    "missing user",
			env:     map[string]string{"POSTGRES_DB": "results", "POSTGRES_HOSTNAME": "db"},
			wantErr: "POSTGRES_USER is required",
		},
		{
			name:    "missing database",
			env:     map[string]string{"POSTGRES_USER": "e2e", "POSTGRES_HOSTNAME": "db"},
			wantErr: "POSTGRES_DB is required",
		},
		{
			name:    "missing host",
			env:     map[string]string{"POSTGRES_USER": "e2e", "POSTGRES_DB": "results"},
			wantErr: "POSTGRES_HOSTNAME is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadPostgresConfig(envMap(tt.env))
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ConnectionString())
		})
	}
}

func TestPostgresConfig_ConnectionStringParses(t *testing.T) {
	// GIVEN credentials that break an unquoted keyword/value string
	cfg := &PostgresConfig{
		User:     "e2e user",
		Password: `pa ss'word\`,
		Database: "results",
		Host:     "db",
		Port:     "5432",
		SSLMode:  "disable",
	}

	// WHEN lib/pq parses it
	_, err := pq.NewConnector(cfg.ConnectionString())

	// THEN the string is well formed
	require.NoError(t, err)
}

func TestLoadServerConfig(t *testing.T) {
	assert.Equal(t, "7080", LoadServerConfig(envMap(nil)).Port)
	assert.Equal(t, "9000", LoadServerConfig(envMap(map[string]string{"PORT": "9000"})).Port)
}
