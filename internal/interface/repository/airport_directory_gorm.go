package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"hangar-service/internal/domain/entity"
	"hangar-service/internal/domain/repository"
	"hangar-service/pkg/codes"
)

// Timezonelist GORM model for the airport reference table
type Timezonelist struct {
	ID          uint           `gorm:"primaryKey"`
	AirportCode string         `gorm:"column:airportcode;unique"`
	AirportName string         `gorm:"column:airport_name"`
	CityCode    string         `gorm:"column:citycode"`
	CityName    string         `gorm:"column:cityname"`
	GmtTz       string         `gorm:"column:gmttz"`
	TzName      string         `gorm:"column:tzname"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Timezonelist) TableName() string {
	return "m_timezone_list"
}

// GormAirportDirectory serves airport metadata from the m_timezone_list reference table.
// The table is keyed by IATA code; ICAO input is mapped through the static table first.
type GormAirportDirectory struct {
	db *gorm.DB
}

var _ repository.AirportInfoProvider = (*GormAirportDirectory)(nil)

// NewGormAirportDirectory creates a new GORM airport directory
func NewGormAirportDirectory(db *gorm.DB) *GormAirportDirectory {
	return &GormAirportDirectory{
		db: db,
	}
}

// LookupAirport finds an airport by IATA or ICAO code
func (r *GormAirportDirectory) LookupAirport(ctx context.Context, code string) (*entity.AirportInfo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	iata, icao := code, ""
	if len(code) == 4 {
		mapped, ok := codes.AirportIATAByICAO(code)
		if !ok {
			return nil, nil
		}
		iata, icao = mapped, code
	}

	var row Timezonelist
	result := r.byAirportCode(r.db.WithContext(ctx), iata).First(&row)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, fmt.Errorf("query airport %s: %w", iata, result.Error)
	}
	if row.AirportCode == "" {
		return nil, nil
	}

	return toAirportInfo(row, icao), nil
}

func (r *GormAirportDirectory) byAirportCode(tx *gorm.DB, iata string) *gorm.DB {
	return tx.Unscoped().Where("airportcode = ?", iata)
}

// toAirportInfo converts a reference row to airport info, filling ICAO from the static table when not given.
func toAirportInfo(row Timezonelist, icao string) *entity.AirportInfo {
	iata := strings.ToUpper(row.AirportCode)
	if icao == "" {
		icao, _ = codes.AirportICAOByIATA(iata)
	}
	return &entity.AirportInfo{
		CodeIATA: iata,
		CodeICAO: icao,
		Name:     row.AirportName,
		City:     row.CityName,
		Timezone: row.TzName,
	}
}
