package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.TokenStoreDriver)
				assert.Equal(t, 25, cfg.DBMaxOpenConnections)
				assert.Equal(t, 5, cfg.DBMaxIdleConnections)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "aes-gcm", cfg.EncryptionAlgorithm)
				assert.Equal(t, 0, cfg.DefaultTokenTTLHours)
				assert.Equal(t, "piivault", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom server configuration",
			envVars: map[string]string{
				"SERVER_HOST": "localhost",
				"SERVER_PORT": "9090",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "localhost", cfg.ServerHost)
				assert.Equal(t, 9090, cfg.ServerPort)
			},
		},
		{
			name: "load custom token store configuration",
			envVars: map[string]string{
				"TOKEN_STORE_DRIVER":   "bbolt",
				"BBOLT_PATH":           "/var/lib/piivault/tokens.db",
				"DB_CONNECTION_STRING": "user:password@tcp(localhost:3306)/testdb",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "bbolt", cfg.TokenStoreDriver)
				assert.Equal(t, "/var/lib/piivault/tokens.db", cfg.BboltPath)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
			},
		},
		{
			name: "load kms configuration",
			envVars: map[string]string{
				"KMS_KEY_URI":          "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=",
				"ENCRYPTION_ALGORITHM": "chacha20-poly1305",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4=", cfg.KMSKeyURI)
				assert.Equal(t, "chacha20-poly1305", cfg.EncryptionAlgorithm)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg := Load()
			tt.validate(t, cfg)

			for key := range tt.envVars {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func TestGetGinMode(t *testing.T) {
	tests := []struct {
		logLevel string
		expected string
	}{
		{"debug", "debug"},
		{"info", "release"},
		{"warn", "release"},
		{"error", "release"},
		{"unknown", "release"},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			assert.Equal(t, tt.expected, cfg.GetGinMode())
		})
	}
}

func TestSensitiveFieldList(t *testing.T) {
	t.Run("EmptyUsesBuiltinList", func(t *testing.T) {
		cfg := &Config{SensitiveFields: ""}
		assert.Nil(t, cfg.SensitiveFieldList())
	})

	t.Run("ParsesCommaSeparatedList", func(t *testing.T) {
		cfg := &Config{SensitiveFields: "email, phone ,ssn,"}
		assert.Equal(t, []string{"email", "phone", "ssn"}, cfg.SensitiveFieldList())
	})
}
