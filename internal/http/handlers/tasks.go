package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterTask создаёт новую задачу
func (h *Handler) RegisterTask(c *gin.Context) {
	payload, err := decodeTaskPayload(c)
	if err != nil {
		writeBodyError(c, err)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), payload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": StatusTaskCreated, "id": task.ID})
}

// ListTasks returns every task ordered by id
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// TaskDetail returns a single task
func (h *Handler) TaskDetail(c *gin.Context) {
	id, ok := parseTaskID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask replaces title, description and completed of an existing task
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	payload, err := decodeTaskPayload(c)
	if err != nil {
		writeBodyError(c, err)
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), id, payload)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": StatusTaskUpdated, "id": task.ID})
}

// DeleteTask удаляет задачу по ID
func (h *Handler) DeleteTask(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrTaskIDNotProvided})
		return
	}
	id, ok := parseTaskID(raw)
	if !ok {
		notFound(c)
		return
	}
	// zero never names a task
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrTaskIDNotProvided})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": StatusTaskDeleted})
}

// DeleteAllTasks is idempotent, an empty store is not an error
func (h *Handler) DeleteAllTasks(c *gin.Context) {
	if _, err := h.Tasks.DeleteAll(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": StatusAllTasksDeleted})
}
