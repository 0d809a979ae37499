package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/cartchef/backend/config"
	"github.com/pageza/cartchef/backend/internal/database"
	"github.com/pageza/cartchef/backend/internal/models"
	"github.com/pageza/cartchef/backend/internal/testhelpers"
	"github.com/pageza/cartchef/backend/migrations"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBDriver:   database.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "cart.db"),
	}

	db, err := database.New(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.Migrate(ctx, cfg, db, migrations.FS, zap.NewNop()))
	assert.NoError(t, database.HealthCheck(ctx, db))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	_, err := database.New(context.Background(), &config.Config{DBDriver: "mysql"}, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "cartchef", DBSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cartchef sslmode=disable", database.PostgresDSN(cfg))
}

func TestSQLMigrationsOnPostgres(t *testing.T) {
	db, cfg := testhelpers.SetupPostgres(t)
	ctx := context.Background()

	// SetupPostgres already applied everything
	sqlDB, err := database.OpenSQL(cfg)
	require.NoError(t, err)
	defer sqlDB.Close()

	applied, err := database.RunSQLMigrations(ctx, sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, applied)

	user := testhelpers.CreateUser(t, db, "ravi")
	product := testhelpers.CreateProduct(t, db, "Ghee", 550, 5)
	var count int64
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
	assert.NotEmpty(t, user.ID)

	name, err := database.Rollback(ctx, sqlDB, migrations.FS, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "0001_init.sql", name)
	assert.False(t, db.Migrator().HasTable(&models.CartItem{}))

	_, err = database.Rollback(ctx, sqlDB, migrations.FS, zap.NewNop())
	assert.ErrorIs(t, err, database.ErrNothingToRollback)

	applied, err = database.RunSQLMigrations(ctx, sqlDB, fstest.MapFS{
		"0001_init.sql":          &fstest.MapFile{Data: mustRead(t, "0001_init.sql")},
		"0001_init_rollback.sql": &fstest.MapFile{Data: []byte("SELECT 1")},
		"README.md":              &fstest.MapFile{Data: []byte("ignored")},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql"}, applied)
}

func TestNewRedisClient(t *testing.T) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		t.Skip("REDIS_HOST not set, skipping Redis test")
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client, err := database.NewRedisClient(context.Background(), &config.Config{RedisHost: host, RedisPort: port}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := database.NewRedisClient(context.Background(), &config.Config{RedisURL: "not-a-url://"}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to parse Redis URL")
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	data, err := migrations.FS.ReadFile(name)
	require.NoError(t, err)
	return data
}
