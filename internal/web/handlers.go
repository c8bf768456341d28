package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ZLostTK/IntelliTasker/internal/ai"
	"github.com/ZLostTK/IntelliTasker/internal/task"
	"github.com/ZLostTK/IntelliTasker/internal/timeutil"
)

// Coarse client-facing messages. Validation detail stays in the server log;
// the frontend only switches on the status code.
const (
	msgNotFound    = "task not found"
	msgInvalidData = "invalid task data"
	msgAIFailure   = "could not generate task, check AI configuration"
)

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "IntelliTasker API",
		"version": s.version,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var payload task.Create
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("create task rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidData})
		return
	}

	created, err := s.tasks.Create(c.Request.Context(), payload)
	if err != nil {
		s.taskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleGetTask(c *gin.Context) {
	found, err := s.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) handleListTasks(c *gin.Context) {
	opts, err := listOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := s.tasks.List(c.Request.Context(), opts)
	if err != nil {
		s.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var payload task.Update
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("update task rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidData})
		return
	}

	updated, err := s.tasks.Update(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		s.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	deleted, err := s.tasks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.taskError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGenerateTask(c *gin.Context) {
	var req ai.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("generate task rejected: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidData})
		return
	}

	draft, err := s.drafts.GenerateDraft(c.Request.Context(), req)
	if err != nil {
		log.Printf("generate task failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": msgAIFailure})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// taskError maps repository errors onto the API's status codes. Malformed and
// unknown ids both read as 404: the caller asked for a task that does not
// exist, however it spelled the id.
func (s *Server) taskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, task.ErrInvalidID), errors.Is(err, task.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, task.ErrInvalidTimeRange), errors.Is(err, timeutil.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidData})
	default:
		log.Printf("task handler error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// listOptions reads the list query surface. Unknown sortBy/filterBy values
// pass through and fall back to defaults downstream; only unreadable numerics
// and booleans are rejected.
func listOptions(c *gin.Context) (task.ListOptions, error) {
	opts := task.ListOptions{
		FilterBy: c.Query("filterBy"),
		SortBy:   c.Query("sortBy"),
		Search:   c.Query("search"),
	}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errors.New("completed must be a boolean")
		}
		opts.Completed = &completed
	}

	var err error
	if opts.Skip, err = queryInt64(c, "skip", 0); err != nil {
		return opts, err
	}
	if opts.Limit, err = queryInt64(c, "limit", 0); err != nil {
		return opts, err
	}

	return opts, nil
}

func queryInt64(c *gin.Context, name string, def int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return v, nil
}
