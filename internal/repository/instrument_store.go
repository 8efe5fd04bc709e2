package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"TrendBoard/internal/domain/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when a single-record lookup has no match.
var ErrNotFound = errors.New("instrument not found")

// InstrumentStore persists the instrument dataset in SQLite. The store
// is write-once: it is seeded at startup and read-only afterwards, so
// every List call hands out an independent slice.
type InstrumentStore struct {
	db *gorm.DB
}

// NewInstrumentStore opens (creating if needed) the SQLite database at path.
func NewInstrumentStore(path string) (*InstrumentStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.Instrument{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &InstrumentStore{db: db}, nil
}

// SeedIfEmpty loads the given instruments once; a populated store is
// left untouched.
func (s *InstrumentStore) SeedIfEmpty(ctx context.Context, instruments []models.Instrument) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Instrument{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count instruments: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&instruments).Error; err != nil {
		return fmt.Errorf("seed instruments: %w", err)
	}
	return nil
}

// List returns the full dataset. The result is freshly materialized on
// every call; callers may filter and sort it without affecting others.
func (s *InstrumentStore) List(ctx context.Context) ([]models.Instrument, error) {
	var out []models.Instrument
	if err := s.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list instruments: %w", err)
	}
	return out, nil
}

// Get returns one instrument by id, or ErrNotFound.
func (s *InstrumentStore) Get(ctx context.Context, id string) (models.Instrument, error) {
	var in models.Instrument
	err := s.db.WithContext(ctx).First(&in, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Instrument{}, ErrNotFound
		}
		return models.Instrument{}, fmt.Errorf("get instrument: %w", err)
	}
	return in, nil
}

// Sectors returns the distinct sectors present in the dataset, sorted.
func (s *InstrumentStore) Sectors(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.WithContext(ctx).
		Model(&models.Instrument{}).
		Distinct("sector").
		Order("sector asc").
		Pluck("sector", &out).Error
	if err != nil {
		return nil, fmt.Errorf("list sectors: %w", err)
	}
	return out, nil
}

// Close releases the underlying connection.
func (s *InstrumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
