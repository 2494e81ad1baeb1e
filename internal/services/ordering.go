package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/constants"
	"github.com/yukikurage/onestep-api/internal/ordering"
)

var (
	ErrContentRequired = errors.New("content is required")
	ErrContentTooLong  = fmt.Errorf("content must be at most %d characters", constants.MaxTodoContentLength)
	ErrInvalidDueTime  = errors.New("due_time must be HH:MM or HH:MM:SS")
)

// MoveInput names the neighbours an item should end up between.
type MoveInput struct {
	PrevID *uint64
	NextID *uint64
}

func (m MoveInput) request(subjectID uint64) ordering.MoveRequest {
	return ordering.MoveRequest{
		SubjectID: subjectID,
		PrevID:    m.PrevID,
		NextID:    m.NextID,
	}
}

// retryOnRankCollision runs fn a second time when it lost a race for a rank.
// fn must re-read everything it depends on.
func retryOnRankCollision(ctx context.Context, fn func() error) error {
	err := fn()
	if errors.Is(err, ordering.ErrRankCollision) {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rank collision, retrying once")
		err = fn()
	}
	return err
}

// notFoundAs replaces ordering.ErrNotFound with the entity's own sentinel.
func notFoundAs(err, target error) error {
	if errors.Is(err, ordering.ErrNotFound) {
		return target
	}
	return err
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(content) > constants.MaxTodoContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

// normalizeDueTime accepts HH:MM or HH:MM:SS and stores HH:MM:SS.
func normalizeDueTime(dueTime *string) (*string, error) {
	if dueTime == nil {
		return nil, nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, *dueTime); err == nil {
			s := t.Format("15:04:05")
			return &s, nil
		}
	}
	return nil, ErrInvalidDueTime
}
