package handlers

import (
	"errors"
	"net/http"

	"github.com/concave-dev/sakaton/internal/api/store"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/gin-gonic/gin"
)

// TaskResponse acknowledges a task transition.
type TaskResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"task_id"`
	Points  int64  `json:"points,omitempty"`
}

// HandleGetTasks lists tasks with the caller's progress.
func HandleGetTasks(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID := sessionFrom(c)
		tasks, err := s.Tasks(userID)
		if err != nil {
			abortError(c, http.StatusNotFound, "User not found", err)
			return
		}
		c.JSON(http.StatusOK, backend.TasksResponse{Tasks: tasks})
	}
}

// HandleStartTask marks a task as started.
func HandleStartTask(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID := sessionFrom(c)

		var req backend.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if err := s.StartTask(userID, req.TaskID); err != nil {
			writeTaskError(c, err)
			return
		}

		logging.Info("User %s started task %s", userID, req.TaskID)
		c.JSON(http.StatusOK, TaskResponse{Success: true, TaskID: req.TaskID})
	}
}

// HandleClaimTask completes a started task and credits its reward.
func HandleClaimTask(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID := sessionFrom(c)

		var req backend.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		points, err := s.ClaimTask(userID, req.TaskID)
		if err != nil {
			writeTaskError(c, err)
			return
		}

		logging.Info("User %s claimed task %s (balance %d)", userID, req.TaskID, points)
		c.JSON(http.StatusOK, TaskResponse{Success: true, TaskID: req.TaskID, Points: points})
	}
}

func writeTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, store.ErrUnknownUser):
		abortError(c, http.StatusNotFound, "Task not found", err)
	case errors.Is(err, store.ErrTaskNotStarted), errors.Is(err, store.ErrTaskCompleted):
		abortError(c, http.StatusConflict, "Task cannot change state", err)
	default:
		abortError(c, http.StatusInternalServerError, "Task update failed", err)
	}
}
