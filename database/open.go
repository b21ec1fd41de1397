package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/inkwell-blog/inkwell-api/config"
)

const sqlitePrefix = "sqlite:"

// Open connects to the primary database and, when replicas are configured,
// routes plain reads to them. A DATABASE_URL starting with "sqlite:" or
// "file:" opens an embedded SQLite database instead of PostgreSQL.
func Open(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         NewGormLogger(log.Logger, cfg.SlowQueryThreshold()),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if isSQLite(cfg.DatabaseURL) {
		// SQLite allows a single writer; serialise access through one connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if len(cfg.DatabaseReplicaURLs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.DatabaseReplicaURLs))
		for _, url := range cfg.DatabaseReplicaURLs {
			replicas = append(replicas, dialector(url))
		}
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          replicas,
			Policy:            dbresolver.RandomPolicy{},
			TraceResolverMode: cfg.IsDevelopment(),
		}))
		if err != nil {
			return nil, fmt.Errorf("registering read replicas: %w", err)
		}
		log.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := Ping(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// Ping checks that the primary answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("getting sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}
	return nil
}

func dialector(url string) gorm.Dialector {
	if isSQLite(url) {
		return sqlite.Open(strings.TrimPrefix(url, sqlitePrefix))
	}
	return postgres.New(postgres.Config{
		DSN:                  url,
		PreferSimpleProtocol: true,
	})
}

func isSQLite(url string) bool {
	return strings.HasPrefix(url, sqlitePrefix) || strings.HasPrefix(url, "file:")
}

// NewGormLogger makes GORM report slow queries and errors through zerolog.
func NewGormLogger(l zerolog.Logger, slowThreshold time.Duration) logger.Interface {
	return logger.New(
		gormWriter{l.With().Str("component", "gorm").Logger()},
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}
