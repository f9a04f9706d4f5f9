package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "holocron.db"))
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("ADMIN_EMAIL", "admin@rebellion.com")
	t.Setenv("ADMIN_PASSWORD", "yavin4")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"serve", "migrate", "seed", "users"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestSeedAndUsers(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations completed successfully")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 4 characters, 4 planets, 4 vehicles")
	assert.Contains(t, out, "Admin account ready: admin@rebellion.com")

	out, err = run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog already seeded, skipping")

	out, err = run(t, "users", "grant", "admin@rebellion.com", "moderator")
	require.NoError(t, err)
	assert.Contains(t, out, "admin, moderator")

	out, err = run(t, "users", "passwd", "admin@rebellion.com", "hoth")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated")

	out, err = run(t, "users", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "admin@rebellion.com")
	assert.Contains(t, out, "active")

	_, err = run(t, "users", "grant", "nobody@empire.com", "admin")
	assert.Error(t, err)
}

func TestMigrate_RequiresSecret(t *testing.T) {
	setupEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "migrate")
	assert.Error(t, err)
}

func TestSeed_GeneratesAdminPassword(t *testing.T) {
	setupEnv(t)
	t.Setenv("ADMIN_PASSWORD", "")

	out, err := run(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated admin password: ")
	assert.Contains(t, out, "Admin account ready: admin@rebellion.com")
}
