package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DBTypeMemory, cfg.DB.Type)
	assert.Equal(t, RunModeFull, cfg.Seeder.Mode)
	assert.Equal(t, 200, cfg.Seeder.BatchSize)
	assert.Equal(t, 2000, cfg.Seeder.DeleteBatchSize)
	assert.True(t, cfg.Seeder.AllowFuzzyMatch)
	assert.False(t, cfg.Seeder.UseRemoteCrime)
	assert.Equal(t, 30*time.Second, cfg.Seeder.FetchTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("SEED_MODE", "additive")
	t.Setenv("SEED_BATCH_SIZE", "50")
	t.Setenv("RESOLVER_ALLOW_FUZZY", "false")
	t.Setenv("PG_HOST", "db.internal")
	t.Setenv("PG_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DBTypePostgres, cfg.DB.Type)
	assert.Equal(t, RunModeAdditive, cfg.Seeder.Mode)
	assert.Equal(t, 50, cfg.Seeder.BatchSize)
	assert.False(t, cfg.Seeder.AllowFuzzyMatch)
	assert.Contains(t, cfg.DB.DSN(), "db.internal:5433")
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Setenv("SEED_MODE", "incremental")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadBatchSize(t *testing.T) {
	t.Setenv("SEED_BATCH_SIZE", "-1")

	_, err := Load()
	require.Error(t, err)
}

func TestDSNSQLite(t *testing.T) {
	c := DBConfig{Type: DBTypeSQLite, Name: "gazetteer.db"}
	assert.Equal(t, "gazetteer.db", c.DSN())

	c.Name = ""
	assert.Equal(t, "file::memory:?cache=shared", c.DSN())
}
