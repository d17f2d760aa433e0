package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":    "9090",
		"BAD_INT": "nine",
		"ENABLED": "true",
		"EMPTY":   "",
		"ORIGINS": "https://a.test, ,https://b.test",
	}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))

	assert.Equal(t, 9090, GetInt(c, "PORT", 1))
	assert.Equal(t, 1, GetInt(c, "BAD_INT", 1))
	assert.Equal(t, 1, GetInt(c, "MISSING", 1))

	assert.True(t, GetBool(c, "ENABLED", false))
	assert.False(t, GetBool(c, "PORT", false))

	assert.Equal(t, []string{"https://a.test", "https://b.test"}, GetList(c, "ORIGINS"))
	assert.Nil(t, GetList(c, "MISSING"))
}

func TestNewDatabaseConfig(t *testing.T) {
	t.Run("assembles a dsn from parts", func(t *testing.T) {
		cfg := NewDatabaseConfig(map[string]string{
			"DB_HOST":     "db.internal",
			"DB_USER":     "admin",
			"DB_PASSWORD": "secret",
			"DB_NAME":     "folio",
		})

		assert.Equal(t, "host=db.internal user=admin password=secret dbname=folio port=5432 sslmode=disable", cfg.DSN)
		assert.Equal(t, 2*time.Second, cfg.SlowThreshold)
		assert.Empty(t, cfg.ReplicaDSN)
	})

	t.Run("explicit dsn wins", func(t *testing.T) {
		cfg := NewDatabaseConfig(map[string]string{
			"DB_DSN":         "postgres://u:p@h/db",
			"DB_HOST":        "ignored",
			"DB_REPLICA_DSN": "postgres://u:p@replica/db",
		})

		assert.Equal(t, "postgres://u:p@h/db", cfg.DSN)
		assert.Equal(t, "postgres://u:p@replica/db", cfg.ReplicaDSN)
	})
}

func TestNewStorageConfig(t *testing.T) {
	cfg := NewStorageConfig(map[string]string{})
	assert.Equal(t, StorageDriverDisk, cfg.Driver)
	assert.Equal(t, "storage/app", cfg.DiskRoot)
	assert.Equal(t, "portfolio", cfg.MinioBucket)

	cfg = NewStorageConfig(map[string]string{
		"STORAGE_DRIVER":    "s3",
		"S3_BUCKET":         "images",
		"S3_USE_PATH_STYLE": "1",
	})
	assert.Equal(t, StorageDriverS3, cfg.Driver)
	assert.Equal(t, "images", cfg.S3Bucket)
	assert.True(t, cfg.S3UsePathStyle)
}

func TestNewServerConfig(t *testing.T) {
	cfg := NewServerConfig(map[string]string{
		"PORT":                 "9000",
		"READ_TIMEOUT_SECONDS": "5",
		"ACCEPTED_ORIGINS":     "https://admin.example.test, http://localhost:5173,",
	})

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 180*time.Second, cfg.WriteTimeout)
	assert.Equal(t, []string{"https://admin.example.test", "http://localhost:5173"}, cfg.AcceptedOrigins)
	assert.EqualValues(t, 8<<20, cfg.MaxBodyBytes)
}
