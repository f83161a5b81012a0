package database

import (
	"context"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-api/internal/models"
)

func TestConnectSQLiteMigrateAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutor.db")

	db, err := Connect("sqlite", path)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.True(t, db.Migrator().HasTable(&models.Lesson{}))
	require.True(t, db.Migrator().HasTable(&models.Question{}))

	require.NoError(t, Close(db))
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := Connect("oracle", "dsn")
	require.Error(t, err)

	_, err = Connect("sqlite", "")
	require.Error(t, err)
}

func TestConnectRedisOptional(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, client)

	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	client, err = ConnectRedis(context.Background(), "redis://"+mini.Addr())
	require.NoError(t, err)
	require.NotNil(t, client)
	require.NoError(t, client.Close())
}

func TestConnectNATSOptional(t *testing.T) {
	conn, err := ConnectNATS("", "tutor-api")
	require.NoError(t, err)
	require.Nil(t, conn)
}
