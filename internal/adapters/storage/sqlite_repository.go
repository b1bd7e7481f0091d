// Package storage persists run history in a local SQLite database.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/renato0307/obreiro/internal/config"
	"github.com/renato0307/obreiro/internal/domain"
	"github.com/renato0307/obreiro/internal/logging"
	"github.com/renato0307/obreiro/internal/ports"
)

const maxRetries = 3

// SQLiteRepository implements ports.RunRepository using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var _ ports.RunRepository = (*SQLiteRepository)(nil)

// gormLogger wraps the obreiro logger for GORM
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logging.Logger.Error("gorm query error",
			"error", err,
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else if elapsed > 200*time.Millisecond {
		logging.Logger.Warn("slow query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	} else {
		logging.Logger.Debug("gorm query",
			"duration", elapsed,
			"sql", sql,
			"rows", rows,
		)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv(logging.EnvDebug) == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (creating if needed) the history database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	dbPath = config.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		PrepareStmt: false,
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL lets several obreiro processes share one history file
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	db.Exec("PRAGMA synchronous=NORMAL")
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.AutoMigrate(&RunModel{}, &ToolCallModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logging.Logger.Debug("History database opened", "path", dbPath)
	return &SQLiteRepository{db: db}, nil
}

// NewSQLiteRepositoryForPath creates a repository under a specific OBREIRO_HOME path
func NewSQLiteRepositoryForPath(homePath string) (*SQLiteRepository, error) {
	return NewSQLiteRepository(filepath.Join(homePath, "state.db"))
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetRun implements RunReader.GetRun. id may also be a prefix; the newest matching run wins.
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	var model RunModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Preload("ToolCalls", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
			Where("id = ? OR id LIKE ?", id, id+"%").
			Order("started_at DESC").
			First(&model).Error
	}, maxRetries)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
		}
		return nil, err
	}

	run := runModelToDomain(model)
	return &run, nil
}

// ListRuns implements RunReader.ListRuns. Runs come back newest first, without tool calls.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	var models []RunModel
	err := withRetry(func() error {
		query := r.db.WithContext(ctx).Order("started_at DESC")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	runs := make([]domain.Run, len(models))
	for i, m := range models {
		runs[i] = runModelToDomain(m)
	}
	return runs, nil
}

// CreateRun implements RunWriter.CreateRun
func (r *SQLiteRepository) CreateRun(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		return fmt.Errorf("run ID cannot be empty")
	}
	return withRetry(func() error {
		model := domainToRunModel(*run)
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create run: %w", err)
		}
		return nil
	}, maxRetries)
}

// UpdateRun implements RunWriter.UpdateRun
func (r *SQLiteRepository) UpdateRun(ctx context.Context, run *domain.Run) error {
	return withRetry(func() error {
		result := r.db.WithContext(ctx).Model(&RunModel{}).
			Where("id = ?", run.ID).
			Updates(map[string]any{
				"branch":      run.Branch,
				"commit_hash": run.CommitHash,
				"error":       run.Error,
				"finished_at": run.FinishedAt,
				"iterations":  run.Iterations,
				"outcome":     string(run.Outcome),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update run: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrRunNotFound, run.ID)
		}
		return nil
	}, maxRetries)
}

// AddToolCall implements RunWriter.AddToolCall
func (r *SQLiteRepository) AddToolCall(ctx context.Context, record *domain.ToolCallRecord) error {
	return withRetry(func() error {
		model := domainToToolCallModel(*record)
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to record tool call: %w", err)
		}
		return nil
	}, maxRetries)
}

// withRetry retries operations on SQLITE_BUSY with exponential backoff
func withRetry(fn func() error, maxRetries int) error {
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries", maxRetries)
}
