package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/onestep-api/internal/constants"
	"github.com/yukikurage/onestep-api/internal/models"
)

// RecommendationType tells how the model understood the todo.
type RecommendationType string

const (
	// RecommendationAnswer carries suggested subtodos.
	RecommendationAnswer RecommendationType = "answer"
	// RecommendationQuestion asks the user for more detail in Contents.
	RecommendationQuestion RecommendationType = "question"
	// RecommendationInvalid means the todo content could not be split.
	RecommendationInvalid RecommendationType = "invalid_content"
)

// RecommendedContent is one suggested subtodo
type RecommendedContent struct {
	Content string `json:"content"`
}

// Recommendation is the model's proposal for breaking a todo down
type Recommendation struct {
	Type     RecommendationType   `json:"type"`
	Contents []RecommendedContent `json:"contents"`
	Thinking string               `json:"thinking"`
}

// Recommender suggests subtodos for a todo
type Recommender interface {
	RecommendSubTodos(ctx context.Context, todo models.Todo) (*Recommendation, error)
}

type AIService struct {
	client *openai.Client
	model  string
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

const plannerPrompt = `You are a personal planner. You receive one todo and split it into steps
that each take about one hour.

Reply with a JSON object only:
{
  "type": "answer" | "question" | "invalid_content",
  "contents": [{"content": "step"}],
  "thinking": "one or two sentences on how you split the todo"
}

Rules:
- "answer": contents holds at most %d steps, in the order they should be done.
- "question": the todo is too vague; contents holds one question for the user.
- "invalid_content": the todo is not a task; contents is empty.
- Each step is at most %d characters.
- Write in the language of the todo content.`

// RecommendSubTodos asks the model to break todo down into subtodos
func (s *AIService) RecommendSubTodos(ctx context.Context, todo models.Todo) (*Recommendation, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	date := "none"
	if todo.Date != nil {
		date = todo.Date.Format(constants.DateLayout)
	}
	dueTime := "none"
	if todo.DueTime != nil {
		dueTime = *todo.DueTime
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: fmt.Sprintf(plannerPrompt, constants.MaxRecommendedSubTodos, constants.MaxTodoContentLength),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("content: %s\ndate: %s\ndue_time: %s", todo.Content, date, dueTime),
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseRecommendation(resp.Choices[0].Message.Content)
}

func parseRecommendation(content string) (*Recommendation, error) {
	var rec Recommendation
	if err := json.Unmarshal([]byte(content), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	switch rec.Type {
	case RecommendationAnswer, RecommendationQuestion, RecommendationInvalid:
	default:
		return nil, fmt.Errorf("unexpected recommendation type %q", rec.Type)
	}

	if rec.Contents == nil {
		rec.Contents = []RecommendedContent{}
	}
	if len(rec.Contents) > constants.MaxRecommendedSubTodos {
		rec.Contents = rec.Contents[:constants.MaxRecommendedSubTodos]
	}
	return &rec, nil
}
