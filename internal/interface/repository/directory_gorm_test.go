package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a postgres-dialect GORM handle that renders SQL without connecting.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=hangar dbname=hangar sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestGormAirportDirectory_Query(t *testing.T) {
	db := newDryRunDB(t)
	dir := NewGormAirportDirectory(db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row Timezonelist
		return dir.byAirportCode(tx, "DXB").First(&row)
	})
	assert.Contains(t, sql, `"m_timezone_list"`)
	assert.Contains(t, sql, "airportcode = 'DXB'")
	assert.NotContains(t, sql, "deleted_at IS NULL")
}

func TestGormAirportDirectory_UnknownICAOSkipsQuery(t *testing.T) {
	dir := NewGormAirportDirectory(newDryRunDB(t))

	info, err := dir.LookupAirport(context.Background(), "ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestGormAirportDirectory_EmptyRowIsUnknown(t *testing.T) {
	dir := NewGormAirportDirectory(newDryRunDB(t))

	info, err := dir.LookupAirport(context.Background(), "dxb")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestToAirportInfo(t *testing.T) {
	row := Timezonelist{AirportCode: "dxb", AirportName: "Dubai International", CityName: "Dubai", TzName: "Asia/Dubai"}

	info := toAirportInfo(row, "")
	assert.Equal(t, "DXB", info.CodeIATA)
	assert.Equal(t, "OMDB", info.CodeICAO)
	assert.Equal(t, "Dubai International", info.Name)
	assert.Equal(t, "Dubai", info.City)
	assert.Equal(t, "Asia/Dubai", info.Timezone)

	assert.Equal(t, "XXXX", toAirportInfo(row, "XXXX").CodeICAO)
}

func TestGormAirlineDirectory_Query(t *testing.T) {
	db := newDryRunDB(t)
	dir := NewGormAirlineDirectory(db)

	name, err := dir.LookupAirlineName(context.Background(), "zz")
	require.NoError(t, err)
	assert.Empty(t, name)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var row Airlines
		return tx.Unscoped().Where("code = ?", "ZZ").First(&row)
	})
	assert.Contains(t, sql, `"m_airlines"`)
}
