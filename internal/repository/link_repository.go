package repository

import (
	"context"

	"gorm.io/gorm"
)

// LinkValue is one desired or existing association entry: the linked lookup
// entity and the value the link carries for this parent.
type LinkValue struct {
	LinkedID int64  `gorm:"column:linked_id" json:"linked_id"`
	Value    string `gorm:"column:value" json:"value"`
}

// LinkRepository maintains one composite-keyed many-to-many table whose rows
// carry a per-pair value, e.g. house_attributes(id_house, id_attribute, value).
type LinkRepository struct {
	db        *gorm.DB
	table     string
	parentCol string
	linkedCol string
}

func NewLinkRepository(db *gorm.DB, table, parentCol, linkedCol string) *LinkRepository {
	return &LinkRepository{db: db, table: table, parentCol: parentCol, linkedCol: linkedCol}
}

func (r *LinkRepository) WithTx(tx *gorm.DB) *LinkRepository {
	return &LinkRepository{db: tx, table: r.table, parentCol: r.parentCol, linkedCol: r.linkedCol}
}

func (r *LinkRepository) ListByParent(ctx context.Context, parentID int64) ([]LinkValue, error) {
	var links []LinkValue
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+r.linkedCol+` AS linked_id, value
		FROM `+r.table+`
		WHERE `+r.parentCol+` = ?
		ORDER BY `+r.linkedCol+` ASC
	`, parentID).Scan(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// ListParentIDs returns ids of parents holding a link with exactly the given
// linked entity and value. Used for join-style narrowing of parent listings.
func (r *LinkRepository) ListParentIDs(ctx context.Context, linkedID int64, value string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT `+r.parentCol+`
		FROM `+r.table+`
		WHERE `+r.linkedCol+` = ? AND value = ?
	`, linkedID, value).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Reconcile brings the parent's links toward the desired set: entries for an
// already linked entity get a value-only in-place update, unseen entries are
// inserted. Existing links absent from desired are left untouched, so an
// empty desired list is a no-op and partial updates never shed links.
func (r *LinkRepository) Reconcile(ctx context.Context, parentID int64, desired []LinkValue) error {
	if len(desired) == 0 {
		return nil
	}

	existing, err := r.ListByParent(ctx, parentID)
	if err != nil {
		return err
	}
	current := make(map[int64]string, len(existing))
	for _, link := range existing {
		current[link.LinkedID] = link.Value
	}

	for _, link := range desired {
		value, ok := current[link.LinkedID]
		if ok {
			if value == link.Value {
				continue
			}
			err = r.db.WithContext(ctx).Exec(`
				UPDATE `+r.table+`
				SET value = ?
				WHERE `+r.parentCol+` = ? AND `+r.linkedCol+` = ?
			`, link.Value, parentID, link.LinkedID).Error
			if err != nil {
				return err
			}
			continue
		}
		err = r.db.WithContext(ctx).Exec(`
			INSERT INTO `+r.table+` (`+r.parentCol+`, `+r.linkedCol+`, value)
			VALUES (?, ?, ?)
		`, parentID, link.LinkedID, link.Value).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *LinkRepository) DeleteByParent(ctx context.Context, parentID int64) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM `+r.table+`
		WHERE `+r.parentCol+` = ?
	`, parentID).Error
}

// DeleteByLinked removes every link referencing the given lookup entity,
// keeping lookup deletion from leaving orphaned rows behind.
func (r *LinkRepository) DeleteByLinked(ctx context.Context, linkedID int64) error {
	return r.db.WithContext(ctx).Exec(`
		DELETE FROM `+r.table+`
		WHERE `+r.linkedCol+` = ?
	`, linkedID).Error
}
