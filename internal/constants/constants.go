package constants

import "time"

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyTodo    = "todo"
	SessionCookieName = "onestep_session"
)

// Auth
const (
	MinPasswordLength = 8
)

// Todo / subtodo / category field limits
const (
	MaxTodoContentLength   = 50
	MaxCategoryTitleLength = 100
	MinCategoryColor       = 0
	MaxCategoryColor       = 8
	MaxSubTodoBatchSize    = 50
)

// DateLayout is the wire format of todo and subtodo dates.
const DateLayout = "2006-01-02"

// Recommendations
const (
	DefaultRecommendCooldown = 10 * time.Second
	MaxRecommendedSubTodos   = 10
)
