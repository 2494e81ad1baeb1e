package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yukikurage/onestep-api/internal/repository"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrRecommendCooldown      = errors.New("recommendations were requested too recently")
)

// RecommendService suggests subtodos for a user's todo, at most once per cooldown window.
type RecommendService struct {
	repos       *repository.Repositories
	recommender Recommender
	cooldown    Cooldown
}

// NewRecommendService creates a new RecommendService. A nil recommender
// disables recommendations.
func NewRecommendService(repos *repository.Repositories, recommender Recommender, cooldown Cooldown) *RecommendService {
	return &RecommendService{
		repos:       repos,
		recommender: recommender,
		cooldown:    cooldown,
	}
}

// Recommend returns suggested subtodos for one of the user's live todos
func (s *RecommendService) Recommend(ctx context.Context, userID, todoID uint64) (*Recommendation, error) {
	if s.recommender == nil {
		return nil, ErrAIServiceNotConfigured
	}

	todo, err := s.repos.Todos.FindLive(ctx, userID, todoID)
	if err != nil {
		return nil, notFoundAs(err, ErrTodoNotFound)
	}

	ok, err := s.cooldown.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRecommendCooldown
	}

	rec, err := s.recommender.RecommendSubTodos(ctx, *todo)
	if err != nil {
		return nil, fmt.Errorf("failed to recommend subtodos: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Uint64("todo_id", todo.ID).
		Str("type", string(rec.Type)).
		Int("contents", len(rec.Contents)).
		Msg("subtodos recommended")
	return rec, nil
}
