package history

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kbukum/xgen/errors"
	"github.com/kbukum/xgen/logger"
)

// Store reads and writes run records.
type Store struct {
	db   *gorm.DB
	keep int
	log  *logger.Logger
}

// Open connects to the SQLite database at cfg.DSN and migrates the run
// table.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger:         newGormLogger(log, parseLogLevel(cfg.LogLevel), cfg.SlowQueryThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}
	if err := db.WithContext(ctx).AutoMigrate(&Run{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrating %s: %w", Run{}.TableName(), err)
	}

	log.Debug("history store opened", logger.F{"dsn": cfg.DSN, "keep": cfg.Keep})
	return &Store{db: db, keep: cfg.Keep, log: log}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Record stores run and, when a retention bound is set, deletes the oldest
// runs of the same recipe beyond it.
func (s *Store) Record(ctx context.Context, run Run) error {
	if run.RunID == "" {
		return errors.MissingField("run_id")
	}
	if _, err := uuid.Parse(run.RunID); err != nil {
		return errors.InvalidFormat("run_id", "a UUID")
	}
	if run.Recipe == "" {
		return errors.MissingField("recipe")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			if stderrors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.AlreadyExists("run " + run.RunID)
			}
			return errors.Internal(err)
		}
		if s.keep == 0 {
			return nil
		}
		kept := tx.Model(&Run{}).Select("id").
			Where("recipe = ?", run.Recipe).
			Order("id DESC").
			Limit(s.keep)
		res := tx.Where("recipe = ? AND id NOT IN (?)", run.Recipe, kept).Delete(&Run{})
		if res.Error != nil {
			return errors.Internal(res.Error)
		}
		if res.RowsAffected > 0 {
			s.log.Debug("pruned runs", logger.F{logger.FieldPipeline: run.Recipe, "deleted": res.RowsAffected})
		}
		return nil
	})
}

// Get returns the run recorded under runID.
func (s *Store) Get(ctx context.Context, runID string) (Run, error) {
	var run Run
	err := s.db.WithContext(ctx).Where("run_id = ?", runID).First(&run).Error
	switch {
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return Run{}, errors.NotFound("run", runID)
	case err != nil:
		return Run{}, errors.Internal(err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first. An empty recipe matches
// every recipe.
func (s *Store) Recent(ctx context.Context, recipe string, limit int) ([]Run, error) {
	if limit <= 0 {
		return nil, errors.InvalidInput("limit", "must be greater than 0")
	}
	q := s.db.WithContext(ctx).Order("id DESC").Limit(limit)
	if recipe != "" {
		q = q.Where("recipe = ?", recipe)
	}
	var runs []Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, errors.Internal(err)
	}
	return runs, nil
}
