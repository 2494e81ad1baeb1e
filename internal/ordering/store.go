// Package ordering keeps sibling rows in a user-controlled order.
//
// A Store works on any row type implementing Item and persists through a
// Backend. Ranks are always computed here from anchor ids; callers never
// supply a literal rank.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/onestep-api/internal/rank"
)

var (
	// ErrNotFound is returned when a subject or anchor id is not a live item of the group.
	ErrNotFound = errors.New("item not found")
	// ErrAmbiguousMove is returned when a move names neither a previous nor a next anchor.
	ErrAmbiguousMove = errors.New("move requires prev_id or next_id")
	// ErrRankCollision is returned by a Backend when the (group, rank) pair is already taken.
	// It is retryable: re-reading the anchors and moving again usually succeeds.
	ErrRankCollision = errors.New("rank already taken in group")
	// ErrSelfAnchor is returned when an item is asked to move next to itself.
	ErrSelfAnchor = errors.New("item cannot be its own anchor")
	// ErrOrderViolation is returned when a computed rank does not fit between its anchors.
	ErrOrderViolation = errors.New("computed rank breaks group order")
)

// Item is a row that belongs to a sibling group and carries a rank.
type Item interface {
	OrderID() uint64
	OrderGroup() uint64
	OrderRank() string
	SetOrderRank(rank string)
	IsDeleted() bool
	MarkDeleted(at time.Time)
}

// Backend is the persistence a Store needs. Every read only sees live rows.
type Backend[T Item] interface {
	// FindLive returns the live item with the given id inside group, or ErrNotFound.
	FindLive(ctx context.Context, group, id uint64) (T, error)
	// LastLive returns the live item with the highest rank in group.
	LastLive(ctx context.Context, group uint64) (T, bool, error)
	// ListLive returns the live items of group in ascending rank order.
	ListLive(ctx context.Context, group uint64) ([]T, error)
	// Save inserts or updates item. A uniqueness violation on (group, rank) is ErrRankCollision.
	Save(ctx context.Context, item T) error
	// Transaction runs fn against a backend bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Backend[T]) error) error
}

// MoveRequest asks for SubjectID to be placed right after PrevID and right
// before NextID. Either anchor may be nil, but not both.
type MoveRequest struct {
	SubjectID uint64
	PrevID    *uint64
	NextID    *uint64
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the clock used to stamp soft deletes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// Store orders the items of one entity type.
type Store[T Item] struct {
	backend Backend[T]
	now     func() time.Time
}

// NewStore creates a Store over backend.
func NewStore[T Item](backend Backend[T], opts ...Option) *Store[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{backend: backend, now: o.now}
}

// ListLive returns the live items of group ordered by rank.
func (s *Store[T]) ListLive(ctx context.Context, group uint64) ([]T, error) {
	return s.backend.ListLive(ctx, group)
}

// RankForAppend returns the rank for a new item at the bottom of group.
func (s *Store[T]) RankForAppend(ctx context.Context, group uint64) (rank.Rank, error) {
	return rankForAppend(ctx, s.backend, group)
}

// RankForMove returns the rank that places an item between the given anchors.
// The result is not checked against the anchors; Move does that.
func (s *Store[T]) RankForMove(ctx context.Context, group uint64, prevID, nextID *uint64) (rank.Rank, error) {
	if prevID == nil && nextID == nil {
		return rank.Rank{}, ErrAmbiguousMove
	}
	prev, next, err := resolveAnchors(ctx, s.backend, group, prevID, nextID)
	if err != nil {
		return rank.Rank{}, err
	}
	return rankBetweenAnchors(prev, next)
}

// Append assigns item the bottom rank of its group and saves it.
func (s *Store[T]) Append(ctx context.Context, item T) (T, error) {
	err := s.backend.Transaction(ctx, func(tx Backend[T]) error {
		r, err := rankForAppend(ctx, tx, item.OrderGroup())
		if err != nil {
			return err
		}
		item.SetOrderRank(r.String())
		return tx.Save(ctx, item)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// Move re-ranks the subject of req inside group and persists it.
func (s *Store[T]) Move(ctx context.Context, group uint64, req MoveRequest) (T, error) {
	var moved T

	if req.PrevID == nil && req.NextID == nil {
		return moved, ErrAmbiguousMove
	}
	if (req.PrevID != nil && *req.PrevID == req.SubjectID) || (req.NextID != nil && *req.NextID == req.SubjectID) {
		return moved, ErrSelfAnchor
	}

	err := s.backend.Transaction(ctx, func(tx Backend[T]) error {
		subject, err := tx.FindLive(ctx, group, req.SubjectID)
		if err != nil {
			return err
		}

		prev, next, err := resolveAnchors(ctx, tx, group, req.PrevID, req.NextID)
		if err != nil {
			return err
		}

		r, err := rankBetweenAnchors(prev, next)
		if err != nil {
			return err
		}
		if !rank.ValidateOrder(prev, next, r) {
			return fmt.Errorf("%w: %s", ErrOrderViolation, r)
		}

		subject.SetOrderRank(r.String())
		if err := tx.Save(ctx, subject); err != nil {
			return err
		}
		moved = subject
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return moved, nil
}

// SoftDelete stamps item as deleted. Its rank is kept.
func (s *Store[T]) SoftDelete(ctx context.Context, item T) (T, error) {
	item.MarkDeleted(s.now())
	if err := s.backend.Save(ctx, item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// SoftDeleteCascade soft-deletes every item in one transaction.
func (s *Store[T]) SoftDeleteCascade(ctx context.Context, items []T) ([]T, error) {
	now := s.now()
	err := s.backend.Transaction(ctx, func(tx Backend[T]) error {
		for _, item := range items {
			if item.IsDeleted() {
				continue
			}
			item.MarkDeleted(now)
			if err := tx.Save(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func rankForAppend[T Item](ctx context.Context, b Backend[T], group uint64) (rank.Rank, error) {
	last, ok, err := b.LastLive(ctx, group)
	if err != nil {
		return rank.Rank{}, err
	}
	if !ok {
		return rank.Initial(), nil
	}

	r, err := rank.Parse(last.OrderRank())
	if err != nil {
		return rank.Rank{}, err
	}
	return rank.Next(r)
}

func resolveAnchors[T Item](ctx context.Context, b Backend[T], group uint64, prevID, nextID *uint64) (*rank.Rank, *rank.Rank, error) {
	prev, err := resolveAnchor(ctx, b, group, prevID)
	if err != nil {
		return nil, nil, err
	}
	next, err := resolveAnchor(ctx, b, group, nextID)
	if err != nil {
		return nil, nil, err
	}
	return prev, next, nil
}

func resolveAnchor[T Item](ctx context.Context, b Backend[T], group uint64, id *uint64) (*rank.Rank, error) {
	if id == nil {
		return nil, nil
	}
	item, err := b.FindLive(ctx, group, *id)
	if err != nil {
		return nil, err
	}
	r, err := rank.Parse(item.OrderRank())
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func rankBetweenAnchors(prev, next *rank.Rank) (rank.Rank, error) {
	switch {
	case prev == nil && next == nil:
		return rank.Rank{}, ErrAmbiguousMove
	case next == nil:
		return rank.Next(*prev)
	case prev == nil:
		return rank.Prev(*next)
	default:
		return rank.Between(*prev, *next)
	}
}
