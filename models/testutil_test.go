package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One in-memory database per test: keep the pool on a single
	// connection so every query sees the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&AuthToken{},
		&RestaurantCategory{},
		&Restaurant{},
		&RestaurantStaff{},
		&Menu{},
		&MenuSection{},
		&MenuCourse{},
		&Tariff{},
	))
	return db
}

func publishedCount(t *testing.T, db *gorm.DB, restaurantID uint) int64 {
	t.Helper()
	var count int64
	db.Model(&Menu{}).
		Where("restaurant_id = ? AND published = ?", restaurantID, true).
		Count(&count)
	return count
}
