package config

import (
	"fmt"
	"time"
)

type DatabaseConfig struct {
	DSN           string
	ReplicaDSN    string
	SlowThreshold time.Duration
	MaxOpenConns  int
	MaxIdleConns  int
}

// NewDatabaseConfig prefers DB_DSN and otherwise assembles a postgres DSN
// from the individual DB_* variables.
func NewDatabaseConfig(c map[string]string) DatabaseConfig {
	dsn := GetString(c, "DB_DSN", "")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			GetString(c, "DB_HOST", "localhost"),
			GetString(c, "DB_USER", "postgres"),
			GetString(c, "DB_PASSWORD", ""),
			GetString(c, "DB_NAME", "portfolio"),
			GetString(c, "DB_PORT", "5432"),
			GetString(c, "DB_SSLMODE", "disable"),
		)
	}

	return DatabaseConfig{
		DSN:           dsn,
		ReplicaDSN:    GetString(c, "DB_REPLICA_DSN", ""),
		SlowThreshold: time.Duration(GetInt(c, "DB_SLOW_THRESHOLD_MS", 2000)) * time.Millisecond,
		MaxOpenConns:  GetInt(c, "DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:  GetInt(c, "DB_MAX_IDLE_CONNS", 5),
	}
}

const (
	StorageDriverDisk  = "disk"
	StorageDriverS3    = "s3"
	StorageDriverMinio = "minio"
)

type StorageConfig struct {
	Driver string

	DiskRoot string

	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

func NewStorageConfig(c map[string]string) StorageConfig {
	return StorageConfig{
		Driver:   GetString(c, "STORAGE_DRIVER", StorageDriverDisk),
		DiskRoot: GetString(c, "STORAGE_DISK_ROOT", "storage/app"),

		S3Bucket:       GetString(c, "S3_BUCKET", ""),
		S3Region:       GetString(c, "S3_REGION", "us-east-1"),
		S3Endpoint:     GetString(c, "S3_ENDPOINT", ""),
		S3AccessKey:    GetString(c, "S3_ACCESS_KEY_ID", ""),
		S3SecretKey:    GetString(c, "S3_SECRET_ACCESS_KEY", ""),
		S3UsePathStyle: GetBool(c, "S3_USE_PATH_STYLE", false),

		MinioEndpoint:  GetString(c, "MINIO_ENDPOINT", ""),
		MinioAccessKey: GetString(c, "MINIO_ACCESS_KEY", ""),
		MinioSecretKey: GetString(c, "MINIO_SECRET_KEY", ""),
		MinioBucket:    GetString(c, "MINIO_BUCKET", "portfolio"),
		MinioUseSSL:    GetBool(c, "MINIO_USE_SSL", false),
	}
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AcceptedOrigins []string
	MaxBodyBytes    int64
}

func NewServerConfig(c map[string]string) ServerConfig {
	return ServerConfig{
		Port:            GetString(c, "PORT", "8080"),
		ReadTimeout:     time.Duration(GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second,
		WriteTimeout:    time.Duration(GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second,
		IdleTimeout:     time.Duration(GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second,
		ShutdownTimeout: time.Duration(GetInt(c, "SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
		AcceptedOrigins: GetList(c, "ACCEPTED_ORIGINS"),
		MaxBodyBytes:    int64(GetInt(c, "MAX_BODY_BYTES", 8<<20)),
	}
}
