package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mining-platform/internal/auth"
	"mining-platform/internal/services"
)

// TaskHandler serves the task list and completions
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// GetTasks returns all active tasks with the caller's completion flags
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// CompleteTask records a completion and credits the task reward
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("taskId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
		return
	}

	reward, err := h.taskService.Complete(c.Request.Context(), userID, uint(taskID))
	if err != nil {
		if errors.Is(err, services.ErrTaskAlreadyCompleted) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Task already completed"})
			return
		}
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to complete task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reward":  reward,
	})
}
