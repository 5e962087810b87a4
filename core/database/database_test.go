package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Sqlite in memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
		require.NoError(t, err)
		require.NotNil(t, db)
		assert.Equal(t, "sqlite", db.Dialector.Name())

		require.NoError(t, db.Exec("CREATE TABLE t (id INTEGER PRIMARY KEY)").Error)
		assert.True(t, db.Migrator().HasTable("t"), "the pool must reuse the single in-memory database")
	})

	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         "mysql",
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "timing",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, err := Connect(Config{Driver: "postgres"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}

func TestDialector(t *testing.T) {
	d, err := Dialector(Config{Driver: "mysql", User: "u", Password: "p@ss", Host: "db", Port: 3306, Name: "timing"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = Dialector(Config{Driver: "sqlite", Name: ":memory:"}, 5)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
}
