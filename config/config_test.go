package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"COGNITO_USER_POOL_ID": "us-east-1_Test1234",
				"COGNITO_CLIENT_ID":    "client123",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "us-east-1", cfg.Cognito.Region)
				assert.True(t, cfg.Cognito.AuthRequired)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
				assert.Equal(t, "json", cfg.Observability.LogFormat)
			},
		},
		{
			name: "custom server and auth settings",
			envVars: map[string]string{
				"COGNITO_REGION":       "eu-west-2",
				"COGNITO_USER_POOL_ID": "eu-west-2_Pool99",
				"COGNITO_CLIENT_ID":    "client456",
				"AUTH_REQUIRED":        "false",
				"SERVER_PORT":          "9000",
				"SERVER_READ_TIMEOUT":  "60s",
				"LOG_LEVEL":            "debug",
				"LOG_FORMAT":           "text",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "eu-west-2", cfg.Cognito.Region)
				assert.False(t, cfg.Cognito.AuthRequired)
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "debug", cfg.Observability.LogLevel)
				assert.Equal(t, "text", cfg.Observability.LogFormat)
			},
		},
		{
			name: "missing user pool id fails",
			envVars: map[string]string{
				"COGNITO_CLIENT_ID": "client123",
			},
			wantErr: true,
		},
		{
			name: "missing client id fails",
			envVars: map[string]string{
				"COGNITO_USER_POOL_ID": "us-east-1_Test1234",
			},
			wantErr: true,
		},
		{
			name: "invalid log level fails",
			envVars: map[string]string{
				"COGNITO_USER_POOL_ID": "us-east-1_Test1234",
				"COGNITO_CLIENT_ID":    "client123",
				"LOG_LEVEL":            "verbose",
			},
			wantErr: true,
		},
		{
			name: "invalid duration falls back to default",
			envVars: map[string]string{
				"COGNITO_USER_POOL_ID": "us-east-1_Test1234",
				"COGNITO_CLIENT_ID":    "client123",
				"SERVER_READ_TIMEOUT":  "not-a-duration",
			},
			wantErr: false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := New()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 9090}
	assert.Equal(t, "127.0.0.1:9090", cfg.Address())
}
