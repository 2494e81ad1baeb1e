package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/onestep-api/internal/database"
	"github.com/yukikurage/onestep-api/internal/ordering"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderedModel is satisfied by *T when T is a gorm model implementing ordering.Item.
type orderedModel[T any] interface {
	*T
	ordering.Item
}

// OrderedRepository is the gorm implementation of ordering.Backend. Rows are
// grouped by groupColumn and soft-deleted through gorm.DeletedAt, so every
// read only sees live rows.
type OrderedRepository[T any, PT orderedModel[T]] struct {
	db          *gorm.DB
	groupColumn string
}

// NewOrderedRepository creates an OrderedRepository grouping rows by groupColumn.
func NewOrderedRepository[T any, PT orderedModel[T]](db *gorm.DB, groupColumn string) *OrderedRepository[T, PT] {
	return &OrderedRepository[T, PT]{db: db, groupColumn: groupColumn}
}

func (r *OrderedRepository[T, PT]) group(db *gorm.DB, group uint64) *gorm.DB {
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: r.groupColumn},
		Value:  group,
	})
}

// FindLive finds a live row by id inside group.
func (r *OrderedRepository[T, PT]) FindLive(ctx context.Context, group, id uint64) (PT, error) {
	var rows []T
	err := r.group(r.db.WithContext(ctx), group).
		Where(clause.Eq{Column: clause.PrimaryColumn, Value: id}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ordering.ErrNotFound
	}
	return PT(&rows[0]), nil
}

// LastLive returns the live row with the highest rank in group.
func (r *OrderedRepository[T, PT]) LastLive(ctx context.Context, group uint64) (PT, bool, error) {
	var rows []T
	err := r.group(r.db.WithContext(ctx), group).
		Scopes(database.OrderByRank(true)).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, false, err
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return PT(&rows[0]), true, nil
}

// ListLive lists the live rows of group by ascending rank.
func (r *OrderedRepository[T, PT]) ListLive(ctx context.Context, group uint64) ([]PT, error) {
	var rows []T
	err := r.group(r.db.WithContext(ctx), group).
		Scopes(database.OrderByRank(false)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return pointers[T, PT](rows), nil
}

// Save inserts or updates item without touching its associations.
func (r *OrderedRepository[T, PT]) Save(ctx context.Context, item PT) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", ordering.ErrRankCollision, item.OrderRank())
	}
	return err
}

// Transaction runs fn with a repository bound to a single transaction.
func (r *OrderedRepository[T, PT]) Transaction(ctx context.Context, fn func(tx ordering.Backend[PT]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewOrderedRepository[T, PT](tx, r.groupColumn))
	})
}

func pointers[T any, PT orderedModel[T]](rows []T) []PT {
	out := make([]PT, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out
}
