package db

import (
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/sleeplog/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("profile name already exists")
	ErrNotSleeping   = errors.New("no sleep in progress")
)

// Store wraps the SQLite database holding every profile's sleep data
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open sets up the database file at path and runs migrations
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  gormLogger(log),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: gdb, log: log}
	if err := s.migrate(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Debug("database opened", zap.String("path", path))
	return s, nil
}

// gormLogger stays quiet unless the app runs at debug level.
// SQL tracing goes to stderr so it never mixes with command output.
func gormLogger(log *zap.Logger) logger.Interface {
	if !log.Core().Enabled(zapcore.DebugLevel) {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(stdlog.New(os.Stderr, "\r\n", stdlog.LstdFlags), logger.Config{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      logger.Info,
		Colorful:      false,
	})
}

// migrate creates/updates the database schema
func (s *Store) migrate() error {
	return s.db.AutoMigrate(
		&models.Profile{},
		&models.Settings{},
		&models.Session{},
		&models.ActiveSleep{},
		&models.AuditLog{},
		&models.Preference{},
	)
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// notFound maps gorm's record-not-found onto ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
