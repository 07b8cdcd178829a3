package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

type ApartmentService struct {
	db         *gorm.DB
	apartments *repository.Repository[model.Apartment]
	images     *repository.Repository[model.ApartmentImage]
	categories *repository.Repository[model.ApartmentCategory]
	parameters *repository.Repository[model.Parameter]
	links      *repository.LinkRepository
	files      ImageStore
}

func NewApartmentService(db *gorm.DB, files ImageStore) *ApartmentService {
	return &ApartmentService{
		db:         db,
		apartments: repository.New[model.Apartment](db),
		images:     repository.New[model.ApartmentImage](db),
		categories: repository.New[model.ApartmentCategory](db),
		parameters: repository.New[model.Parameter](db),
		links:      repository.NewLinkRepository(db, "apartment_parameters", "id_apartment", "id_parameter"),
		files:      files,
	}
}

type CreateApartmentInput struct {
	Name        string
	Description string
	IDCategory  int64
	IDHouse     int64
	Rooms       int
	Area        float64
	Count       int
	Parameters  []repository.LinkValue
}

type UpdateApartmentInput struct {
	Name        *string
	Description *string
	IDCategory  *int64
	IDHouse     *int64
	Rooms       *int
	Area        *float64
	Count       *int
	Parameters  []repository.LinkValue
}

func (in UpdateApartmentInput) fields() repository.Fields {
	f := repository.Fields{}
	if in.Name != nil {
		f["name"] = *in.Name
	}
	if in.Description != nil {
		f["description"] = *in.Description
	}
	if in.IDCategory != nil {
		f["id_category"] = *in.IDCategory
	}
	if in.IDHouse != nil {
		f["id_house"] = *in.IDHouse
	}
	if in.Rooms != nil {
		f["rooms"] = *in.Rooms
	}
	if in.Area != nil {
		f["area"] = *in.Area
	}
	if in.Count != nil {
		f["count"] = *in.Count
	}
	return f
}

type ListApartmentsInput struct {
	Filter         repository.Fields
	ParameterID    int64
	ParameterValue string
}

func (s *ApartmentService) Create(ctx context.Context, input CreateApartmentInput) (*model.Apartment, error) {
	apartment := &model.Apartment{
		Name:        input.Name,
		Description: input.Description,
		IDCategory:  input.IDCategory,
		IDHouse:     input.IDHouse,
		Rooms:       input.Rooms,
		Area:        input.Area,
		Count:       input.Count,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.apartments.WithTx(tx).Add(ctx, apartment); err != nil {
			return fmt.Errorf("%w: create apartment: %v", ErrValidation, err)
		}
		return s.links.WithTx(tx).Reconcile(ctx, apartment.ID, input.Parameters)
	})
	if err != nil {
		return nil, err
	}
	return apartment, nil
}

func (s *ApartmentService) Update(ctx context.Context, id int64, input UpdateApartmentInput) (*model.Apartment, error) {
	var updated *model.Apartment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apartments := s.apartments.WithTx(tx)
		if _, err := apartments.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		row, err := apartments.Update(ctx, id, input.fields())
		if err != nil {
			return err
		}
		if err := s.links.WithTx(tx).Reconcile(ctx, id, input.Parameters); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ApartmentService) Delete(ctx context.Context, id int64) error {
	var staleFiles []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.apartments.WithTx(tx).GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		files, err := s.cascade(ctx, tx, id)
		if err != nil {
			return err
		}
		staleFiles = files
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range staleFiles {
		_ = s.files.Delete(name)
	}
	return nil
}

// cascade is the single ordered dependency list for the apartment aggregate:
// parameter links, then images, then the apartment row.
func (s *ApartmentService) cascade(ctx context.Context, tx *gorm.DB, id int64) ([]string, error) {
	if err := s.links.WithTx(tx).DeleteByParent(ctx, id); err != nil {
		return nil, err
	}

	images := s.images.WithTx(tx)
	rows, err := images.GetAll(ctx, repository.Fields{"id_apartment": id})
	if err != nil {
		return nil, err
	}
	staleFiles := make([]string, 0, len(rows))
	for _, image := range rows {
		staleFiles = append(staleFiles, image.Image)
	}
	if err := images.DeleteByFilter(ctx, repository.Fields{"id_apartment": id}); err != nil {
		return nil, err
	}

	if err := s.apartments.WithTx(tx).Delete(ctx, id); err != nil {
		return nil, err
	}
	return staleFiles, nil
}

// deleteByHouse cascades every apartment under the house inside the caller's
// transaction. Used by house deletion.
func (s *ApartmentService) deleteByHouse(ctx context.Context, tx *gorm.DB, houseID int64) ([]string, error) {
	apartments, err := s.apartments.WithTx(tx).GetAll(ctx, repository.Fields{"id_house": houseID})
	if err != nil {
		return nil, err
	}
	var staleFiles []string
	for _, apartment := range apartments {
		files, err := s.cascade(ctx, tx, apartment.ID)
		if err != nil {
			return nil, err
		}
		staleFiles = append(staleFiles, files...)
	}
	return staleFiles, nil
}

func (s *ApartmentService) List(ctx context.Context, input ListApartmentsInput) ([]model.Apartment, error) {
	apartments, err := s.apartments.GetAll(ctx, input.Filter)
	if err != nil {
		return nil, err
	}

	if input.ParameterID != 0 && input.ParameterValue != "" {
		ids, err := s.links.ListParentIDs(ctx, input.ParameterID, input.ParameterValue)
		if err != nil {
			return nil, err
		}
		keep := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			keep[id] = struct{}{}
		}
		narrowed := apartments[:0]
		for _, apartment := range apartments {
			if _, ok := keep[apartment.ID]; ok {
				narrowed = append(narrowed, apartment)
			}
		}
		apartments = narrowed
	}

	for i := range apartments {
		if err := s.resolve(ctx, &apartments[i]); err != nil {
			return nil, err
		}
	}
	return apartments, nil
}

func (s *ApartmentService) Get(ctx context.Context, id int64) (*model.Apartment, error) {
	apartment, err := s.apartments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.resolve(ctx, apartment); err != nil {
		return nil, err
	}
	return apartment, nil
}

// resolve loads the apartment aggregate: category, images and parameter links.
func (s *ApartmentService) resolve(ctx context.Context, apartment *model.Apartment) error {
	category, err := s.categories.GetByID(ctx, apartment.IDCategory)
	if err == nil {
		apartment.Category = category
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	images, err := s.images.GetAll(ctx, repository.Fields{"id_apartment": apartment.ID})
	if err != nil {
		return err
	}
	apartment.Images = images

	links, err := s.links.ListByParent(ctx, apartment.ID)
	if err != nil {
		return err
	}
	apartment.Parameters = make([]model.ParameterValue, 0, len(links))
	for _, link := range links {
		parameter, err := s.parameters.GetByID(ctx, link.LinkedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		apartment.Parameters = append(apartment.Parameters, model.ParameterValue{
			Parameter: *parameter,
			Value:     link.Value,
		})
	}
	return nil
}

// Category lookup CRUD.

func (s *ApartmentService) Categories(ctx context.Context, filter repository.Fields) ([]model.ApartmentCategory, error) {
	return s.categories.GetAll(ctx, filter)
}

func (s *ApartmentService) Category(ctx context.Context, id int64) (*model.ApartmentCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *ApartmentService) CreateCategory(ctx context.Context, name string) (*model.ApartmentCategory, error) {
	category := &model.ApartmentCategory{Name: name}
	if _, err := s.categories.Add(ctx, category); err != nil {
		return nil, fmt.Errorf("%w: create category: %v", ErrValidation, err)
	}
	return category, nil
}

func (s *ApartmentService) UpdateCategory(ctx context.Context, id int64, name string) (*model.ApartmentCategory, error) {
	category, err := s.categories.Update(ctx, id, repository.Fields{"name": name})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *ApartmentService) DeleteCategory(ctx context.Context, id int64) error {
	return s.categories.Delete(ctx, id)
}

// Parameter lookup CRUD.

func (s *ApartmentService) Parameters(ctx context.Context, filter repository.Fields) ([]model.Parameter, error) {
	return s.parameters.GetAll(ctx, filter)
}

func (s *ApartmentService) Parameter(ctx context.Context, id int64) (*model.Parameter, error) {
	parameter, err := s.parameters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return parameter, nil
}

func (s *ApartmentService) CreateParameter(ctx context.Context, name string) (*model.Parameter, error) {
	parameter := &model.Parameter{Name: name}
	if _, err := s.parameters.Add(ctx, parameter); err != nil {
		return nil, fmt.Errorf("%w: create parameter: %v", ErrValidation, err)
	}
	return parameter, nil
}

func (s *ApartmentService) UpdateParameter(ctx context.Context, id int64, name string) (*model.Parameter, error) {
	parameter, err := s.parameters.Update(ctx, id, repository.Fields{"name": name})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return parameter, nil
}

// DeleteParameter drops the lookup entity together with every apartment link
// referencing it.
func (s *ApartmentService) DeleteParameter(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.links.WithTx(tx).DeleteByLinked(ctx, id); err != nil {
			return err
		}
		return s.parameters.WithTx(tx).Delete(ctx, id)
	})
}

// Image sub-resources.

func (s *ApartmentService) AddImages(ctx context.Context, apartmentID int64, uploads []ImageUpload) ([]model.ApartmentImage, error) {
	if _, err := s.apartments.GetByID(ctx, apartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	added := make([]model.ApartmentImage, 0, len(uploads))
	for _, upload := range uploads {
		stored, err := s.files.Save(upload.Data, upload.Name, "apartment")
		if err != nil {
			return nil, err
		}
		image := &model.ApartmentImage{IDApartment: apartmentID, Image: stored}
		if _, err := s.images.Add(ctx, image); err != nil {
			return nil, err
		}
		added = append(added, *image)
	}
	return added, nil
}

func (s *ApartmentService) DeleteImages(ctx context.Context, apartmentID int64, imageIDs []int64) error {
	if _, err := s.apartments.GetByID(ctx, apartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	for _, imageID := range imageIDs {
		image, err := s.images.GetOne(ctx, repository.Fields{"id": imageID, "id_apartment": apartmentID})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		if err := s.images.Delete(ctx, image.ID); err != nil {
			return err
		}
		if err := s.files.Delete(image.Image); err != nil {
			return err
		}
	}
	return nil
}
