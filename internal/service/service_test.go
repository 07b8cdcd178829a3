package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Konaisya/build-service/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.House{},
		&model.HouseImage{},
		&model.Attribute{},
		&model.HouseAttribute{},
		&model.ApartmentCategory{},
		&model.Apartment{},
		&model.ApartmentImage{},
		&model.Parameter{},
		&model.ApartmentParameter{},
		&model.Order{},
	))
	return db
}

// fakeImageStore keeps uploads in memory and records deletions.
type fakeImageStore struct {
	saved   int
	deleted []string
}

func (f *fakeImageStore) Save(data []byte, originalName, category string) (string, error) {
	f.saved++
	return filepath.Join(category, originalName), nil
}

func (f *fakeImageStore) Delete(storedName string) error {
	f.deleted = append(f.deleted, storedName)
	return nil
}

func newHouseFixture(t *testing.T) (*gorm.DB, *HouseService, *ApartmentService, *fakeImageStore) {
	t.Helper()
	db := newTestDB(t)
	files := &fakeImageStore{}
	apartments := NewApartmentService(db, files)
	houses := NewHouseService(db, apartments, files)
	return db, houses, apartments, files
}
