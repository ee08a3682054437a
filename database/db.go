package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// DSN returns DATABASE_URL or a key/value DSN assembled from the DB_* settings.
func DSN(c map[string]string) string {
	if url := config.GetString(c, "DATABASE_URL", ""); url != "" {
		return url
	}

	host := config.GetString(c, "DB_HOST", "")
	if host == "" {
		return ""
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "portfolio"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)
}

// Open connects to the primary database and registers any read replicas
// listed in DB_REPLICA_URLS. Queries inside transactions and writes always go
// to the primary.
func Open(c map[string]string) (*gorm.DB, error) {
	dsn := DSN(c)
	if dsn == "" {
		return nil, errs.NewConfigMissingError("DATABASE_URL")
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger(c),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	maxOpen := config.GetInt(c, "DB_MAX_OPEN_CONNS", 20)
	maxIdle := config.GetInt(c, "DB_MAX_IDLE_CONNS", 5)
	lifetime := config.GetDuration(c, "DB_CONN_MAX_LIFETIME", 30*time.Minute)

	if replicas := config.GetList(c, "DB_REPLICA_URLS"); len(replicas) > 0 {
		dialectors := make([]gorm.Dialector, 0, len(replicas))
		for _, replica := range replicas {
			dialectors = append(dialectors, postgres.New(postgres.Config{
				DSN:                  replica,
				PreferSimpleProtocol: true,
			}))
		}

		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: dialectors,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxOpenConns(maxOpen).
			SetMaxIdleConns(maxIdle).
			SetConnMaxLifetime(lifetime)

		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)

	// gen_random_uuid() is built in from PostgreSQL 13; older servers need pgcrypto.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return nil, fmt.Errorf("enable pgcrypto extension: %w", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

func newLogger(c map[string]string) logger.Interface {
	level := logger.Warn
	if config.GetBool(c, "DB_LOG_QUERIES", false) {
		level = logger.Info
	}

	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             config.GetDuration(c, "DB_SLOW_QUERY_THRESHOLD", 2*time.Second),
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  config.GetBool(c, "DB_LOG_COLOR", true),
		},
	)
}
