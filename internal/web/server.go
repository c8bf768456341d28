package web

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/ZLostTK/IntelliTasker/internal/ai"
	"github.com/ZLostTK/IntelliTasker/internal/task"
)

// TaskService is the slice of the task repository the handlers need.
type TaskService interface {
	Create(ctx context.Context, payload task.Create) (*task.Response, error)
	GetByID(ctx context.Context, id string) (*task.Response, error)
	List(ctx context.Context, opts task.ListOptions) ([]task.Response, error)
	Update(ctx context.Context, id string, payload task.Update) (*task.Response, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// DraftService produces AI task drafts.
type DraftService interface {
	GenerateDraft(ctx context.Context, req ai.DraftRequest) (*ai.TaskDraft, error)
}

// Server is the IntelliTasker HTTP server.
type Server struct {
	tasks   TaskService
	drafts  DraftService
	version string
	router  *gin.Engine
}

// NewServer creates a server and registers all routes.
func NewServer(tasks TaskService, drafts DraftService, version string) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS())

	s := &Server{
		tasks:   tasks,
		drafts:  drafts,
		version: version,
		router:  router,
	}

	router.GET("/", s.handleRoot)
	router.GET("/health", s.handleHealth)

	tasksGroup := router.Group("/tasks")
	{
		tasksGroup.POST("", s.handleCreateTask)
		tasksGroup.GET("", s.handleListTasks)
		tasksGroup.GET("/:id", s.handleGetTask)
		tasksGroup.PUT("/:id", s.handleUpdateTask)
		tasksGroup.DELETE("/:id", s.handleDeleteTask)
	}

	router.POST("/ai/generate-task", s.handleGenerateTask)

	return s
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router for tests and for http.Server embedding.
func (s *Server) Handler() *gin.Engine {
	return s.router
}
