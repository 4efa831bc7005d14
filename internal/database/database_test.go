package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/models"
)

func TestDialector(t *testing.T) {
	for _, driver := range []string{"sqlite", "mysql", "postgres"} {
		dialector, err := Dialector(&config.Config{StoreDriver: driver, SQLitePath: "x.db"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, dialector.Name())
	}

	_, err := Dialector(&config.Config{StoreDriver: "file"})
	assert.Error(t, err)
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: "sqlite",
		SQLitePath:  filepath.Join(t.TempDir(), "tasks.db"),
	}

	require.NoError(t, Connect(cfg))
	t.Cleanup(func() {
		sqlDB, err := GetDB().DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, Migrate())

	assert.True(t, GetDB().Migrator().HasTable(&models.Task{}))
	assert.True(t, GetDB().Migrator().HasTable(&models.TaskSequence{}))
}
