package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.AllowRoleSelfAssign)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "todos.db", cfg.Store.DSN)
	assert.Equal(t, "todo_app", cfg.Mongo.Database)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":               "secret",
		"ENV":                      "production",
		"TOKEN_TTL":                "5m",
		"STORE_DRIVER":             "postgres",
		"DATABASE_URL":             "postgres://todo@localhost/todo",
		"REDIS_ADDR":               "localhost:6379",
		"ALLOW_ROLE_SELF_ASSIGN":   "true",
		"BOOTSTRAP_ADMIN_USERNAME": "root",
		"BOOTSTRAP_ADMIN_PASSWORD": "rootpass",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Auth.AllowRoleSelfAssign)
	assert.Equal(t, "root", cfg.Auth.AdminUsername)
}

func TestLoadWith_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{}},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "oracle"}},
		{"zero ttl", map[string]string{"JWT_SECRET": "s", "TOKEN_TTL": "0s"}},
		{"half admin", map[string]string{"JWT_SECRET": "s", "BOOTSTRAP_ADMIN_USERNAME": "root"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tc.env))
			assert.Error(t, err)
		})
	}
}
