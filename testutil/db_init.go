package testutil

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-admin-backend/database"
	"github.com/rpupo63/portfolio-admin-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// InitDatabase opens a private in-memory SQLite database, migrates it and
// returns it wrapped in the application's repositories.
func InitDatabase(t *testing.T) database.Database {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps SQLite's shared cache free of table locks
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	d, err := database.New(db)
	require.NoError(t, err)
	require.NoError(t, d.Migrate(context.Background()))

	return d
}

// AttachEmptyReplica registers a migrated but empty SQLite database as the
// read replica of d, standing in for a replica that has not caught up yet.
func AttachEmptyReplica(t *testing.T, d database.Database) {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	replica, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// the in-memory database lives as long as this connection stays open
	sqlDB, err := replica.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	replicaDB, err := database.New(replica)
	require.NoError(t, err)
	require.NoError(t, replicaDB.Migrate(context.Background()))

	require.NoError(t, d.DB().Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(dsn)},
	})))
}

// CreateType inserts a project type and returns it.
func CreateType(t *testing.T, d database.Database, name string) *models.Type {
	t.Helper()

	projectType := &models.Type{Name: name}
	require.NoError(t, d.TypeRepo().Add(context.Background(), projectType))
	return projectType
}

// CreateTechnologies inserts one technology per name, in order.
func CreateTechnologies(t *testing.T, d database.Database, names ...string) []*models.Technology {
	t.Helper()

	technologies := make([]*models.Technology, 0, len(names))
	for _, name := range names {
		technology := &models.Technology{Name: name}
		require.NoError(t, d.TechnologyRepo().Add(context.Background(), technology))
		technologies = append(technologies, technology)
	}
	return technologies
}
