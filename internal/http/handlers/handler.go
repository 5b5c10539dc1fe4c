package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"task_tracker/internal/domain"
	"task_tracker/internal/logger"
	"task_tracker/internal/repository"
	"task_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// Response messages
const (
	StatusTaskCreated     = "Task created"
	StatusTaskUpdated     = "Task updated"
	StatusTaskDeleted     = "Task deleted"
	StatusAllTasksDeleted = "All tasks deleted"

	ErrTaskNotFound      = "Task not found"
	ErrTaskIDNotProvided = "Task ID not provided"
	ErrInternal          = "internal server error"
)

type Handler struct {
	Tasks *service.TaskService
}

func NewHandler(tasks *service.TaskService) *Handler {
	return &Handler{Tasks: tasks}
}

// parseTaskID accepts only unsigned base-10 integers, anything else does not
// name a task.
func parseTaskID(raw string) (int64, bool) {
	if raw == "" || len(raw) > 19 {
		return 0, false
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// writeError maps service errors onto HTTP responses
func writeError(c *gin.Context, err error) {
	if fields, ok := domain.IsValidationError(err); ok {
		c.JSON(http.StatusBadRequest, fields)
		return
	}
	if errors.Is(err, repository.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": ErrTaskNotFound})
		return
	}

	logger.FromContext(c.Request.Context()).Error("request failed",
		"path", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": ErrTaskNotFound})
}
