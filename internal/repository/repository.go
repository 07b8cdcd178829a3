package repository

import (
	"context"

	"gorm.io/gorm"
)

// Fields is a partial field set keyed by column name. Only keys that are
// present and non-nil are ever applied to a row.
type Fields map[string]any

// Prune returns a copy of f without nil values. The merge rule for partial
// updates is exactly "what Prune keeps is what gets written".
func (f Fields) Prune() Fields {
	pruned := make(Fields, len(f))
	for key, value := range f {
		if value == nil {
			continue
		}
		pruned[key] = value
	}
	return pruned
}

// Repository provides filtered CRUD over a single table. Filters are an
// exact-match conjunction of column values; an empty filter matches all rows.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *Repository[T]) WithTx(tx *gorm.DB) *Repository[T] {
	return &Repository[T]{db: tx}
}

func (r *Repository[T]) GetAll(ctx context.Context, filter Fields) ([]T, error) {
	var rows []T
	query := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter.Prune()))
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository[T]) GetOne(ctx context.Context, filter Fields) (*T, error) {
	var row T
	query := r.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		query = query.Where(map[string]any(filter.Prune()))
	}
	if err := query.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.GetOne(ctx, Fields{"id": id})
}

func (r *Repository[T]) Add(ctx context.Context, entity *T) (*T, error) {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Update applies the present keys of fields to the row with the given id and
// returns the updated row. Returns gorm.ErrRecordNotFound when id is absent.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields Fields) (*T, error) {
	pruned := fields.Prune()
	if len(pruned) > 0 {
		result := r.db.WithContext(ctx).
			Model(new(T)).
			Where("id = ?", id).
			Updates(map[string]any(pruned))
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the row by id. Deleting an absent id is not an error here;
// existence is the caller's concern.
func (r *Repository[T]) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

// DeleteByFilter bulk-deletes matching rows. An empty filter is a no-op
// rather than a table wipe.
func (r *Repository[T]) DeleteByFilter(ctx context.Context, filter Fields) error {
	pruned := filter.Prune()
	if len(pruned) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where(map[string]any(pruned)).Delete(new(T)).Error
}
