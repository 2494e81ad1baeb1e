package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/onestep-api/internal/middleware"
	"github.com/yukikurage/onestep-api/internal/repository"
	"github.com/yukikurage/onestep-api/internal/services"
)

// Handlers bundles every handler of the API.
type Handlers struct {
	Auth            *AuthHandler
	Todos           *TodoHandler
	SubTodos        *SubTodoHandler
	Categories      *CategoryHandler
	Recommendations *RecommendationHandler

	todoRepo repository.TodoRepository
}

// NewHandlers builds the services and handlers over repos. A nil recommender
// disables recommendations.
func NewHandlers(repos *repository.Repositories, recommender services.Recommender, cooldown services.Cooldown) *Handlers {
	return &Handlers{
		Auth:            NewAuthHandler(services.NewAuthService(repos.Users)),
		Todos:           NewTodoHandler(services.NewTodoService(repos)),
		SubTodos:        NewSubTodoHandler(services.NewSubTodoService(repos)),
		Categories:      NewCategoryHandler(services.NewCategoryService(repos)),
		Recommendations: NewRecommendationHandler(services.NewRecommendService(repos, recommender, cooldown)),
		todoRepo:        repos.Todos,
	}
}

// Register mounts the API routes on api.
func (h *Handlers) Register(api *gin.RouterGroup) {
	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Auth.GetCurrentUser)
	}

	// Todo routes (protected)
	todos := api.Group("/todos")
	todos.Use(middleware.RequireAuth())
	{
		todos.GET("", h.Todos.ListTodos)
		todos.POST("", h.Todos.CreateTodo)
		todos.GET("/:id", h.Todos.GetTodo)
		todos.PATCH("/:id", h.Todos.UpdateTodo)
		todos.DELETE("/:id", h.Todos.DeleteTodo)
		todos.PATCH("/:id/rank", h.Todos.MoveTodo)
		todos.GET("/:id/subtodos", middleware.RequireTodoAccess(h.todoRepo), h.SubTodos.ListSubTodos)
		todos.POST("/:id/subtodos", middleware.RequireTodoAccess(h.todoRepo), h.SubTodos.CreateSubTodos)
		todos.GET("/:id/recommendations", middleware.RequireTodoAccess(h.todoRepo), h.Recommendations.Recommend)
	}

	// Subtodo routes (protected)
	subTodos := api.Group("/subtodos")
	subTodos.Use(middleware.RequireAuth())
	{
		subTodos.PATCH("/:id", h.SubTodos.UpdateSubTodo)
		subTodos.DELETE("/:id", h.SubTodos.DeleteSubTodo)
		subTodos.PATCH("/:id/rank", h.SubTodos.MoveSubTodo)
	}

	// Category routes (protected)
	categories := api.Group("/categories")
	categories.Use(middleware.RequireAuth())
	{
		categories.GET("", h.Categories.ListCategories)
		categories.POST("", h.Categories.CreateCategory)
		categories.PATCH("/:id", h.Categories.UpdateCategory)
		categories.DELETE("/:id", h.Categories.DeleteCategory)
		categories.PATCH("/:id/rank", h.Categories.MoveCategory)
	}

	api.GET("/inbox", middleware.RequireAuth(), h.Todos.Inbox)
}
