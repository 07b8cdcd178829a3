package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Konaisya/build-service/internal/repository"
)

func TestCreateApartmentResolvesCategoryAndParameters(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, _ := newHouseFixture(t)

	category, err := apartments.CreateCategory(ctx, "Comfort")
	require.NoError(t, err)
	finish, err := apartments.CreateParameter(ctx, "Finish")
	require.NoError(t, err)

	apartment, err := apartments.Create(ctx, CreateApartmentInput{
		Name:       "2-room",
		IDCategory: category.ID,
		IDHouse:    1,
		Rooms:      2,
		Area:       54.5,
		Count:      12,
		Parameters: []repository.LinkValue{{LinkedID: finish.ID, Value: "turnkey"}},
	})
	require.NoError(t, err)

	got, err := apartments.Get(ctx, apartment.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	require.Equal(t, "Comfort", got.Category.Name)
	require.Len(t, got.Parameters, 1)
	require.Equal(t, "Finish", got.Parameters[0].Parameter.Name)
	require.Equal(t, "turnkey", got.Parameters[0].Value)
}

func TestUpdateApartmentPartial(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, _ := newHouseFixture(t)

	apartment, err := apartments.Create(ctx, CreateApartmentInput{Name: "2-room", Rooms: 2, Count: 12})
	require.NoError(t, err)

	count := 8
	updated, err := apartments.Update(ctx, apartment.ID, UpdateApartmentInput{Count: &count})
	require.NoError(t, err)
	require.Equal(t, 8, updated.Count)
	require.Equal(t, 2, updated.Rooms)
	require.Equal(t, "2-room", updated.Name)
}

func TestListApartmentsNarrowsByParameterValue(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, _ := newHouseFixture(t)

	finish, err := apartments.CreateParameter(ctx, "Finish")
	require.NoError(t, err)

	turnkey, err := apartments.Create(ctx, CreateApartmentInput{
		Name:       "2-room turnkey",
		IDHouse:    1,
		Parameters: []repository.LinkValue{{LinkedID: finish.ID, Value: "turnkey"}},
	})
	require.NoError(t, err)
	_, err = apartments.Create(ctx, CreateApartmentInput{
		Name:       "2-room shell",
		IDHouse:    1,
		Parameters: []repository.LinkValue{{LinkedID: finish.ID, Value: "shell"}},
	})
	require.NoError(t, err)

	got, err := apartments.List(ctx, ListApartmentsInput{
		Filter:         repository.Fields{"id_house": 1},
		ParameterID:    finish.ID,
		ParameterValue: "turnkey",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, turnkey.ID, got[0].ID)
}

func TestDeleteApartmentCascadesLinksAndImages(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, files := newHouseFixture(t)

	finish, err := apartments.CreateParameter(ctx, "Finish")
	require.NoError(t, err)
	apartment, err := apartments.Create(ctx, CreateApartmentInput{
		Name:       "2-room",
		Parameters: []repository.LinkValue{{LinkedID: finish.ID, Value: "turnkey"}},
	})
	require.NoError(t, err)
	_, err = apartments.AddImages(ctx, apartment.ID, []ImageUpload{{Name: "plan.png", Data: []byte("x")}})
	require.NoError(t, err)

	require.NoError(t, apartments.Delete(ctx, apartment.ID))

	_, err = apartments.Get(ctx, apartment.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.Len(t, files.deleted, 1)

	_, err = apartments.Parameter(ctx, finish.ID)
	require.NoError(t, err)
}

func TestDeleteParameterRemovesItsLinks(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, _ := newHouseFixture(t)

	finish, err := apartments.CreateParameter(ctx, "Finish")
	require.NoError(t, err)
	apartment, err := apartments.Create(ctx, CreateApartmentInput{
		Name:       "2-room",
		Parameters: []repository.LinkValue{{LinkedID: finish.ID, Value: "turnkey"}},
	})
	require.NoError(t, err)

	require.NoError(t, apartments.DeleteParameter(ctx, finish.ID))

	got, err := apartments.Get(ctx, apartment.ID)
	require.NoError(t, err)
	require.Empty(t, got.Parameters)
}

func TestDeleteImagesSkipsForeignRows(t *testing.T) {
	ctx := context.Background()
	_, _, apartments, files := newHouseFixture(t)

	first, err := apartments.Create(ctx, CreateApartmentInput{Name: "first"})
	require.NoError(t, err)
	second, err := apartments.Create(ctx, CreateApartmentInput{Name: "second"})
	require.NoError(t, err)

	images, err := apartments.AddImages(ctx, second.ID, []ImageUpload{{Name: "plan.png", Data: []byte("x")}})
	require.NoError(t, err)

	// Deleting through the wrong parent leaves the image alone.
	require.NoError(t, apartments.DeleteImages(ctx, first.ID, []int64{images[0].ID}))
	require.Empty(t, files.deleted)

	got, err := apartments.Get(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, got.Images, 1)
}
