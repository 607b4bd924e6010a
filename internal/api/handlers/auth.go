package handlers

import (
	"errors"
	"net/http"

	"github.com/concave-dev/sakaton/internal/api/store"
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/logging"
	"github.com/gin-gonic/gin"
)

// HandleAuthenticate exchanges WebApp init data for a fresh session token.
func HandleAuthenticate(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req backend.AuthenticateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			abortError(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}

		token, user, err := s.Authenticate(req.InitData)
		if err != nil {
			if errors.Is(err, store.ErrInvalidInitData) {
				abortError(c, http.StatusBadRequest, "Invalid init data", err)
				return
			}
			abortError(c, http.StatusInternalServerError, "Authentication failed", err)
			return
		}

		logging.Info("Authenticated user %s (%s), token %s", user.ID, user.FirstName, logging.FormatToken(token))
		c.JSON(http.StatusOK, backend.AuthenticateResponse{Token: token})
	}
}
