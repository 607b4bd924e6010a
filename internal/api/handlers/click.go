package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/concave-dev/sakaton/internal/api/store"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/integrity"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/gin-gonic/gin"
)

// ClickConfig controls how click batches are verified and credited.
type ClickConfig struct {
	Secret    string
	Tolerance time.Duration // allowed skew between the batch timestamp and now
	Credit    int64         // points per accepted batch
	Now       func() time.Time
}

// ClickResponse acknowledges an accepted batch.
type ClickResponse struct {
	Success bool  `json:"success"`
	Points  int64 `json:"points"`
}

// HandleClick verifies the integrity tag over "{timestamp}:{token}", rejects
// stale or replayed timestamps and credits one batch.
func HandleClick(s Store, cfg ClickConfig) gin.HandlerFunc {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		token, userID := sessionFrom(c)

		var req backend.ClickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		if err := integrity.Verify(cfg.Secret, req.Timestamp, token, req.Hash, now(), cfg.Tolerance); err != nil {
			logging.Warn("Rejected click batch from %s: %v", userID, err)
			abortError(c, http.StatusForbidden, "Invalid click signature", err)
			return
		}

		points, err := s.RecordClicks(token, req.Timestamp, cfg.Credit)
		switch {
		case errors.Is(err, store.ErrReplay):
			abortError(c, http.StatusConflict, "Click batch already submitted", err)
			return
		case errors.Is(err, store.ErrUnknownUser):
			abortError(c, http.StatusUnauthorized, "Unknown session", err)
			return
		case err != nil:
			abortError(c, http.StatusInternalServerError, "Failed to record clicks", err)
			return
		}

		logging.Debug("Credited %d points to %s (balance %d)", cfg.Credit, userID, points)
		c.JSON(http.StatusOK, ClickResponse{Success: true, Points: points})
	}
}
