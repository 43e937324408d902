package config

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries the runtime configuration, loaded from the environment
// (optionally via a .env file).
type Config struct {
	Env string

	// DBDriver selects postgres or sqlite; DBDSN is the matching DSN or
	// file path.
	DBDriver string
	DBDSN    string

	// QueueBackend selects the index work queue: redis, kafka, memory or
	// none. With none, index dispatch is a logged no-op.
	QueueBackend string
	RedisAddr    string
	KafkaBrokers string
	KafkaGroup   string

	// PublicBaseURL is the externally reachable base URL used to build
	// absolute document download references.
	PublicBaseURL string

	// AuditCodec selects the audit snapshot compression: nop, gzip or
	// brotli.
	AuditCodec string

	// RetentionSweepSchedule is the cron expression of the retention sweep job.
	RetentionSweepSchedule string
}

func LoadConfig() *Config {
	return &Config{
		Env:                    env("ENV", "dev"),
		DBDriver:               env("DB_DRIVER", "sqlite"),
		DBDSN:                  env("DB_DSN", ".tmp/publicationbank.db"),
		QueueBackend:           env("INDEX_QUEUE_BACKEND", "none"),
		RedisAddr:              env("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:           env("KAFKA_BROKERS", "localhost:9092"),
		KafkaGroup:             env("KAFKA_GROUP", "publicationbank-index"),
		PublicBaseURL:          env("PUBLIC_BASE_URL", "http://localhost:4030"),
		AuditCodec:             env("AUDIT_CODEC", "gzip"),
		RetentionSweepSchedule: env("RETENTION_SWEEP_SCHEDULE", "@every 1h"),
	}
}

// GetDb opens the configured database.
func GetDb(cnf *Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cnf.DBDriver {
	case "postgres":
		dialector = postgres.Open(cnf.DBDSN)
	default:
		dialector = sqlite.Open(cnf.DBDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to the database: %v", err)
	}

	return db
}

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
