package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env      Env
	Server   ServerConfig
	Database DatabaseConfig
	Minio    MinioConfig
	NATS     NATSConfig
	Intake   IntakeConfig
	Cleanup  CleanupConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint   string `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName string `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey  string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey  string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	Region     string `envconfig:"MINIO_REGION" default:""`
	UseSSL     bool   `envconfig:"MINIO_USE_SSL" default:"false"`
}

// IntakeConfig bounds what the intake endpoints accept.
type IntakeConfig struct {
	MaxFileSizeBytes int64         `envconfig:"INTAKE_MAX_FILE_SIZE" default:"524288000"` // 500 MiB
	MaxDuration      time.Duration `envconfig:"INTAKE_MAX_DURATION" default:"5m"`
	PresignExpiry    time.Duration `envconfig:"INTAKE_PRESIGN_EXPIRY" default:"1h"`
}

type CleanupConfig struct {
	OrphanTTL    time.Duration `envconfig:"CLEANUP_ORPHAN_TTL" default:"1h"`
	CleanupEvery time.Duration `envconfig:"CLEANUP_EVERY" default:"15m"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"VIDEO_JOBS"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"video-worker"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"jobs.submitted"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" default:"video-workers"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
