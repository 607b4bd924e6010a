package handlers

import (
	"net/http"

	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/gin-gonic/gin"
)

// HandleGetUser returns the caller's profile.
func HandleGetUser(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID := sessionFrom(c)
		user, err := s.User(userID)
		if err != nil {
			abortError(c, http.StatusNotFound, "User not found", err)
			return
		}
		c.JSON(http.StatusOK, backend.UserResponse{User: user})
	}
}

// HandleGetPoints returns the caller's balance.
func HandleGetPoints(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID := sessionFrom(c)
		points, err := s.Points(userID)
		if err != nil {
			abortError(c, http.StatusNotFound, "User not found", err)
			return
		}
		c.JSON(http.StatusOK, backend.PointsResponse{Points: points})
	}
}

// HandleGetRanking returns the leaderboard. Public; user_id is optional.
func HandleGetRanking(s Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ranking := s.Ranking(c.Query("user_id"))
		if ranking.Ranking == nil {
			ranking.Ranking = []backend.RankEntry{}
		}
		c.JSON(http.StatusOK, ranking)
	}
}
