package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Konaisya/build-service/internal/model"
	"github.com/Konaisya/build-service/internal/repository"
)

const placeholderImage = "placeholder.png"

// ImageStore is the file-storage collaborator. Delete is idempotent on
// missing references.
type ImageStore interface {
	Save(data []byte, originalName, category string) (string, error)
	Delete(storedName string) error
}

// ImageUpload is one incoming file to persist under a parent.
type ImageUpload struct {
	Name string
	Data []byte
}

type HouseService struct {
	db         *gorm.DB
	houses     *repository.Repository[model.House]
	images     *repository.Repository[model.HouseImage]
	attributes *repository.Repository[model.Attribute]
	links      *repository.LinkRepository
	apartments *ApartmentService
	files      ImageStore
}

func NewHouseService(db *gorm.DB, apartments *ApartmentService, files ImageStore) *HouseService {
	return &HouseService{
		db:         db,
		houses:     repository.New[model.House](db),
		images:     repository.New[model.HouseImage](db),
		attributes: repository.New[model.Attribute](db),
		links:      repository.NewLinkRepository(db, "house_attributes", "id_house", "id_attribute"),
		apartments: apartments,
		files:      files,
	}
}

type CreateHouseInput struct {
	Name        string
	Description string
	MainImage   string
	Status      model.HouseStatus
	IsOrder     bool
	District    string
	Address     string
	Floors      int
	Entrances   int
	BeginDate   *time.Time
	EndDate     *time.Time
	StartPrice  *float64
	FinalPrice  *float64
	Attributes  []repository.LinkValue
}

type UpdateHouseInput struct {
	Name        *string
	Description *string
	MainImage   *string
	Status      *model.HouseStatus
	IsOrder     *bool
	District    *string
	Address     *string
	Floors      *int
	Entrances   *int
	BeginDate   *time.Time
	EndDate     *time.Time
	StartPrice  *float64
	FinalPrice  *float64
	Attributes  []repository.LinkValue
}

// fields projects the present scalar keys only; attribute links are handled
// by reconciliation, never by the row update.
func (in UpdateHouseInput) fields() repository.Fields {
	f := repository.Fields{}
	if in.Name != nil {
		f["name"] = *in.Name
	}
	if in.Description != nil {
		f["description"] = *in.Description
	}
	if in.MainImage != nil {
		f["main_image"] = *in.MainImage
	}
	if in.Status != nil {
		f["status"] = *in.Status
	}
	if in.IsOrder != nil {
		f["is_order"] = *in.IsOrder
	}
	if in.District != nil {
		f["district"] = *in.District
	}
	if in.Address != nil {
		f["address"] = *in.Address
	}
	if in.Floors != nil {
		f["floors"] = *in.Floors
	}
	if in.Entrances != nil {
		f["entrances"] = *in.Entrances
	}
	if in.BeginDate != nil {
		f["begin_date"] = *in.BeginDate
	}
	if in.EndDate != nil {
		f["end_date"] = *in.EndDate
	}
	if in.StartPrice != nil {
		f["start_price"] = *in.StartPrice
	}
	if in.FinalPrice != nil {
		f["final_price"] = *in.FinalPrice
	}
	return f
}

type ListHousesInput struct {
	Filter         repository.Fields
	AttributeID    int64
	AttributeValue string
}

func (s *HouseService) Create(ctx context.Context, input CreateHouseInput) (*model.House, error) {
	var house *model.House
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.createTx(ctx, tx, input)
		if err != nil {
			return err
		}
		house = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return house, nil
}

// createTx inserts the house and its attribute links inside the caller's
// transaction. Also used by order creation for project houses.
func (s *HouseService) createTx(ctx context.Context, tx *gorm.DB, input CreateHouseInput) (*model.House, error) {
	if input.Status == "" {
		input.Status = model.HouseStatusProject
	}
	if input.MainImage == "" {
		input.MainImage = placeholderImage
	}
	house := &model.House{
		Name:        input.Name,
		Description: input.Description,
		MainImage:   input.MainImage,
		Status:      input.Status,
		IsOrder:     input.IsOrder,
		District:    input.District,
		Address:     input.Address,
		Floors:      input.Floors,
		Entrances:   input.Entrances,
		BeginDate:   input.BeginDate,
		EndDate:     input.EndDate,
		StartPrice:  input.StartPrice,
		FinalPrice:  input.FinalPrice,
	}
	if _, err := s.houses.WithTx(tx).Add(ctx, house); err != nil {
		return nil, fmt.Errorf("%w: create house: %v", ErrValidation, err)
	}
	if err := s.links.WithTx(tx).Reconcile(ctx, house.ID, input.Attributes); err != nil {
		return nil, err
	}
	return house, nil
}

func (s *HouseService) Update(ctx context.Context, id int64, input UpdateHouseInput) (*model.House, error) {
	var updated *model.House
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		houses := s.houses.WithTx(tx)
		if _, err := houses.GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		row, err := houses.Update(ctx, id, input.fields())
		if err != nil {
			return err
		}
		if err := s.links.WithTx(tx).Reconcile(ctx, id, input.Attributes); err != nil {
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

// Delete removes the house and every dependent: apartments with their own
// cascades, then attribute links, images and finally the house row. Stored
// image files are removed only after the transaction commits.
func (s *HouseService) Delete(ctx context.Context, id int64) error {
	var staleFiles []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
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

// cascade is the single ordered dependency list for the house aggregate.
// Returns stored file names that became unreferenced.
func (s *HouseService) cascade(ctx context.Context, tx *gorm.DB, id int64) ([]string, error) {
	houses := s.houses.WithTx(tx)
	house, err := houses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	staleFiles, err := s.apartments.deleteByHouse(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := s.links.WithTx(tx).DeleteByParent(ctx, id); err != nil {
		return nil, err
	}

	images := s.images.WithTx(tx)
	rows, err := images.GetAll(ctx, repository.Fields{"id_house": id})
	if err != nil {
		return nil, err
	}
	for _, image := range rows {
		staleFiles = append(staleFiles, image.Image)
	}
	if err := images.DeleteByFilter(ctx, repository.Fields{"id_house": id}); err != nil {
		return nil, err
	}
	if house.MainImage != "" && house.MainImage != placeholderImage {
		staleFiles = append(staleFiles, house.MainImage)
	}

	if err := houses.Delete(ctx, id); err != nil {
		return nil, err
	}
	return staleFiles, nil
}

func (s *HouseService) List(ctx context.Context, input ListHousesInput) ([]model.House, error) {
	houses, err := s.houses.GetAll(ctx, input.Filter)
	if err != nil {
		return nil, err
	}

	if input.AttributeID != 0 && input.AttributeValue != "" {
		ids, err := s.links.ListParentIDs(ctx, input.AttributeID, input.AttributeValue)
		if err != nil {
			return nil, err
		}
		keep := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			keep[id] = struct{}{}
		}
		narrowed := houses[:0]
		for _, house := range houses {
			if _, ok := keep[house.ID]; ok {
				narrowed = append(narrowed, house)
			}
		}
		houses = narrowed
	}

	for i := range houses {
		if err := s.resolve(ctx, &houses[i]); err != nil {
			return nil, err
		}
	}
	return houses, nil
}

func (s *HouseService) Get(ctx context.Context, id int64) (*model.House, error) {
	house, err := s.houses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.resolve(ctx, house); err != nil {
		return nil, err
	}
	return house, nil
}

// resolve loads the house aggregate: images, attribute links and apartments.
func (s *HouseService) resolve(ctx context.Context, house *model.House) error {
	images, err := s.images.GetAll(ctx, repository.Fields{"id_house": house.ID})
	if err != nil {
		return err
	}
	house.Images = images

	links, err := s.links.ListByParent(ctx, house.ID)
	if err != nil {
		return err
	}
	house.Attributes = make([]model.AttributeValue, 0, len(links))
	for _, link := range links {
		attribute, err := s.attributes.GetByID(ctx, link.LinkedID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		house.Attributes = append(house.Attributes, model.AttributeValue{
			Attribute: *attribute,
			Value:     link.Value,
		})
	}

	apartments, err := s.apartments.List(ctx, ListApartmentsInput{
		Filter: repository.Fields{"id_house": house.ID},
	})
	if err != nil {
		return err
	}
	house.Apartments = apartments
	return nil
}

// Attribute lookup CRUD.

func (s *HouseService) Attributes(ctx context.Context, filter repository.Fields) ([]model.Attribute, error) {
	return s.attributes.GetAll(ctx, filter)
}

func (s *HouseService) Attribute(ctx context.Context, id int64) (*model.Attribute, error) {
	attribute, err := s.attributes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return attribute, nil
}

func (s *HouseService) CreateAttribute(ctx context.Context, name string) (*model.Attribute, error) {
	attribute := &model.Attribute{Name: name}
	if _, err := s.attributes.Add(ctx, attribute); err != nil {
		return nil, fmt.Errorf("%w: create attribute: %v", ErrValidation, err)
	}
	return attribute, nil
}

func (s *HouseService) UpdateAttribute(ctx context.Context, id int64, name string) (*model.Attribute, error) {
	attribute, err := s.attributes.Update(ctx, id, repository.Fields{"name": name})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return attribute, nil
}

// DeleteAttribute drops the lookup entity together with every house link
// referencing it.
func (s *HouseService) DeleteAttribute(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.links.WithTx(tx).DeleteByLinked(ctx, id); err != nil {
			return err
		}
		return s.attributes.WithTx(tx).Delete(ctx, id)
	})
}

// Image sub-resources.

func (s *HouseService) AddImages(ctx context.Context, houseID int64, uploads []ImageUpload) ([]model.HouseImage, error) {
	if _, err := s.houses.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	added := make([]model.HouseImage, 0, len(uploads))
	for _, upload := range uploads {
		stored, err := s.files.Save(upload.Data, upload.Name, "house")
		if err != nil {
			return nil, err
		}
		image := &model.HouseImage{IDHouse: houseID, Image: stored}
		if _, err := s.images.Add(ctx, image); err != nil {
			return nil, err
		}
		added = append(added, *image)
	}
	return added, nil
}

func (s *HouseService) DeleteImages(ctx context.Context, houseID int64, imageIDs []int64) error {
	if _, err := s.houses.GetByID(ctx, houseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	for _, imageID := range imageIDs {
		image, err := s.images.GetOne(ctx, repository.Fields{"id": imageID, "id_house": houseID})
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

// ReplaceMainImage swaps the house's single main image: the old stored file
// is removed, the new one persisted and the filename reference updated.
func (s *HouseService) ReplaceMainImage(ctx context.Context, houseID int64, upload ImageUpload) (*model.House, error) {
	house, err := s.houses.GetByID(ctx, houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if house.MainImage != "" && house.MainImage != placeholderImage {
		if err := s.files.Delete(house.MainImage); err != nil {
			return nil, err
		}
	}
	stored, err := s.files.Save(upload.Data, upload.Name, "house")
	if err != nil {
		return nil, err
	}
	return s.houses.Update(ctx, houseID, repository.Fields{"main_image": stored})
}
