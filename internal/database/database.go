package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"inkblog/internal/config"
)

type MethodsDB interface {
	CloseDB() error
	RunMigrations(dir string) error
	HealthCheck(ctx context.Context) error
}

type DB struct {
	*sqlx.DB
	logger *slog.Logger
}

func DSN(cfg config.DB) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DbHOST,
		cfg.DbPORT,
		cfg.DbUSER,
		cfg.DbPASSWORD,
		cfg.DbNAME,
		cfg.DbSSLMODE,
	)
}

// ConnectDB opens the pool and checks it. Migrations are applied separately
// by the caller.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	logger.Info("connecting to database", "host", cfg.DB.DbHOST, "dbname", cfg.DB.DbNAME)

	db, err := sqlx.Connect("postgres", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{DB: db, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := dbStruct.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	logger.Info("connected to PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// MigrationFiles lists the .sql files in dir in lexical order.
func MigrationFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("migrations directory not found: %s", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("error listing migrations: %w", err)
	}
	sort.Strings(files)

	return files, nil
}

// RunMigrations executes every migration in dir. The files are written to be
// re-runnable, so no applied-version table is kept.
func (db *DB) RunMigrations(dir string) error {
	files, err := MigrationFiles(dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		migrationSQL, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("error reading migration %s: %w", file, err)
		}

		db.logger.Info("applying migration", "file", file)

		if _, err := db.Exec(string(migrationSQL)); err != nil {
			return fmt.Errorf("error applying migration %s: %w", file, err)
		}
	}

	db.logger.Info("migrations applied", "count", len(files))
	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.PingContext(ctx)
}
