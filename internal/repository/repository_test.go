package repository

import (
	"context"
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

func TestFieldsPruneDropsNilValues(t *testing.T) {
	fields := Fields{"name": "A", "floors": nil, "district": "North"}
	pruned := fields.Prune()

	require.Len(t, pruned, 2)
	require.Equal(t, "A", pruned["name"])
	require.NotContains(t, pruned, "floors")
}

func TestRepositoryAddAndGet(t *testing.T) {
	ctx := context.Background()
	repo := New[model.House](newTestDB(t))

	house, err := repo.Add(ctx, &model.House{Name: "Aurora", Status: model.HouseStatusProject, Floors: 9})
	require.NoError(t, err)
	require.NotZero(t, house.ID)

	got, err := repo.GetByID(ctx, house.ID)
	require.NoError(t, err)
	require.Equal(t, "Aurora", got.Name)
	require.Equal(t, model.HouseStatusProject, got.Status)
}

func TestRepositoryGetAllFiltersExactMatch(t *testing.T) {
	ctx := context.Background()
	repo := New[model.House](newTestDB(t))

	for _, h := range []model.House{
		{Name: "A", District: "North", Floors: 9},
		{Name: "B", District: "North", Floors: 12},
		{Name: "C", District: "South", Floors: 9},
	} {
		house := h
		_, err := repo.Add(ctx, &house)
		require.NoError(t, err)
	}

	north, err := repo.GetAll(ctx, Fields{"district": "North"})
	require.NoError(t, err)
	require.Len(t, north, 2)

	northNine, err := repo.GetAll(ctx, Fields{"district": "North", "floors": 9})
	require.NoError(t, err)
	require.Len(t, northNine, 1)
	require.Equal(t, "A", northNine[0].Name)

	all, err := repo.GetAll(ctx, Fields{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRepositoryUpdateWritesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	repo := New[model.House](newTestDB(t))

	house, err := repo.Add(ctx, &model.House{Name: "Aurora", District: "North", Floors: 9})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, house.ID, Fields{"floors": 12, "district": nil})
	require.NoError(t, err)
	require.Equal(t, 12, updated.Floors)
	require.Equal(t, "North", updated.District)
	require.Equal(t, "Aurora", updated.Name)
}

func TestRepositoryUpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	repo := New[model.House](newTestDB(t))

	_, err := repo.Update(ctx, 999, Fields{"name": "X"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := New[model.House](newTestDB(t))

	house, err := repo.Add(ctx, &model.House{Name: "Aurora"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, house.ID))
	require.NoError(t, repo.Delete(ctx, house.ID))

	_, err = repo.GetByID(ctx, house.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteByFilter(t *testing.T) {
	ctx := context.Background()
	repo := New[model.HouseImage](newTestDB(t))

	for _, image := range []model.HouseImage{
		{IDHouse: 1, Image: "a.png"},
		{IDHouse: 1, Image: "b.png"},
		{IDHouse: 2, Image: "c.png"},
	} {
		row := image
		_, err := repo.Add(ctx, &row)
		require.NoError(t, err)
	}

	// Empty filter must not wipe the table.
	require.NoError(t, repo.DeleteByFilter(ctx, Fields{}))
	all, err := repo.GetAll(ctx, Fields{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, repo.DeleteByFilter(ctx, Fields{"id_house": 1}))
	remaining, err := repo.GetAll(ctx, Fields{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "c.png", remaining[0].Image)
}
