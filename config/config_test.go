package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires jwt secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		assert.ErrorIs(t, err, ErrMissingJWTSecret)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("DB_DRIVER", "sqlite")
		t.Setenv("DATABASE_URL", "")
		t.Setenv("CORS_ORIGINS", "")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, time.Hour, cfg.JWTExpiresIn)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "holocron.db", cfg.DatabaseURL)
		assert.Empty(t, cfg.CORSOrigins)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("parses overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_EXPIRES_IN", "15m")
		t.Setenv("BCRYPT_COST", "10")
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/app")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
		t.Setenv("APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, cfg.JWTExpiresIn)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DatabaseURL)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("rejects bad values", func(t *testing.T) {
		cases := map[string][2]string{
			"expiry not a duration": {"JWT_EXPIRES_IN", "soon"},
			"negative expiry":       {"JWT_EXPIRES_IN", "-1h"},
			"cost too low":          {"BCRYPT_COST", "1"},
			"cost not a number":     {"BCRYPT_COST", "high"},
			"unknown driver":        {"DB_DRIVER", "mysql"},
		}
		for name, kv := range cases {
			t.Run(name, func(t *testing.T) {
				t.Setenv("JWT_SECRET", "s3cret")
				t.Setenv(kv[0], kv[1])
				_, err := Load()
				assert.Error(t, err)
			})
		}
	})
}
