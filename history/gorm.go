package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Row is the gorm model for the history table.
type Row struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	RegNo     string    `gorm:"column:reg_no;type:varchar(32);index;not null"`
	Message   string    `gorm:"type:text;not null"`
	Timestamp time.Time `gorm:"index;not null"`
}

func (Row) TableName() string { return "history" }

type gormStore struct {
	db *gorm.DB
}

// OpenDB connects to the MySQL backend. The returned handle carries the
// connection pool shared by every store built over it.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.PoolSize)
	sqlDB.SetMaxOpenConns(cfg.PoolSize + cfg.MaxOverflow)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// NewGormStore wraps an existing gorm handle as a Store. Exposed so the
// identity directory can share the same connection pool.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Insert(ctx context.Context, regNo, message string) error {
	// Timestamp comes from the database clock so ordering is consistent
	// across server instances.
	err := s.db.WithContext(ctx).
		Exec("INSERT INTO history (reg_no, message, timestamp) VALUES (?, ?, NOW())", regNo, message).
		Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInsertFailed, err)
	}
	return nil
}

func (s *gormStore) Recent(ctx context.Context, regNo string, limit int) ([]Entry, error) {
	var rows []Row
	err := s.db.WithContext(ctx).
		Where("reg_no = ?", regNo).
		Order("timestamp DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryFailed, err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{Message: row.Message, Timestamp: row.Timestamp})
	}
	return entries, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec("SELECT 1").Error
}
