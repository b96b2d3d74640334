// Package identity resolves student register numbers to display profiles.
package identity

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no student matches the register number.
var ErrNotFound = errors.New("register number not found")

// Profile is the display profile for a verified register number.
type Profile struct {
	Name       string `json:"name"`
	Department string `json:"dept"`
}

// Directory looks up student profiles by register number.
type Directory interface {
	Lookup(ctx context.Context, regNo string) (*Profile, error)
}

// Student is the gorm model for the students table.
type Student struct {
	RegNo string `gorm:"column:reg_no;type:varchar(32);primaryKey"`
	Name  string `gorm:"type:varchar(128);not null"`
	Dept  string `gorm:"type:varchar(64);not null"`
}

func (Student) TableName() string { return "students" }

type gormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a Directory over an existing gorm handle,
// sharing the history store's connection pool.
func NewGormDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) Lookup(ctx context.Context, regNo string) (*Profile, error) {
	var student Student
	err := d.db.WithContext(ctx).
		Where("reg_no = ?", regNo).
		First(&student).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, regNo)
	}
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}

	return &Profile{Name: student.Name, Department: student.Dept}, nil
}
