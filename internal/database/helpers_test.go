package database

import (
	"context"
	"homefinder/internal/models"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// setupTestDB opens an isolated SQLite-backed store with the schema migrated.
func setupTestDB(t *testing.T, opts Options) *GormDB {
	t.Helper()

	gdb, err := NewGormDB(sqlite.Open(filepath.Join(t.TempDir(), "homefinder.db")), opts)
	require.NoError(t, err)
	t.Cleanup(func() { gdb.Close() })

	sqlDB, err := gdb.DB().DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.InitSchema())
	return gdb
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int { return &n }
func idPtr(n int64) *int64 { return &n }

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// propertyInput returns a complete, valid listing input.
func propertyInput(title string, beds int) models.PropertyInput {
	return models.PropertyInput{
		Title:        strPtr(title),
		Price:        price("150000.00"),
		Location:     strPtr("Springfield"),
		NumBedrooms:  intPtr(beds),
		NumBathrooms: intPtr(1),
		NumGarage:    intPtr(1),
	}
}

func mustCreateProperty(t *testing.T, gdb *GormDB, in models.PropertyInput) *models.Property {
	t.Helper()
	p, err := gdb.CreateProperty(context.Background(), in)
	require.NoError(t, err)
	return p
}

func countRows(t *testing.T, gdb *GormDB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := gdb.DB().Model(model)
	if where != "" {
		q = q.Where(where, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
