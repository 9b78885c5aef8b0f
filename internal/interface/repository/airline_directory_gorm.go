package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hangar-service/internal/domain/repository"
)

// Airlines GORM model for the airline reference table
type Airlines struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"column:code;unique"`
	Name      string         `gorm:"column:name;unique"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airlines) TableName() string {
	return "m_airlines"
}

// GormAirlineDirectory serves airline names from the m_airlines reference table.
type GormAirlineDirectory struct {
	db *gorm.DB
}

var _ repository.AirlineDirectory = (*GormAirlineDirectory)(nil)

// NewGormAirlineDirectory creates a new GORM airline directory
func NewGormAirlineDirectory(db *gorm.DB) *GormAirlineDirectory {
	return &GormAirlineDirectory{
		db: db,
	}
}

// LookupAirlineName finds an airline name by IATA code, returning "" when unknown
func (r *GormAirlineDirectory) LookupAirlineName(ctx context.Context, code string) (string, error) {
	var airline Airlines
	result := r.db.WithContext(ctx).Unscoped().Where("code = ?", strings.ToUpper(code)).First(&airline)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if result.Error != nil {
		return "", fmt.Errorf("query airline %s: %w", code, result.Error)
	}
	return strings.TrimSpace(airline.Name), nil
}
