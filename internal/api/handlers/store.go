// Package handlers provides HTTP request handlers for the sakaton dev backend.
//
// The handlers mirror the production API the Mini App talks to:
//
//   - POST /api/authenticate: exchange Telegram init data for a session token
//   - POST /api/click: accept a signed click batch
//   - GET /api/getUser, GET /api/getPoints: profile and balance
//   - GET /api/tasks, POST /api/start-task, POST /api/claim-task: task flow
//   - GET /api/getRanking: public leaderboard
//
// Authenticated handlers expect the bearer middleware to have resolved the
// session token and stored it, with its user id, in the gin context.
package handlers

import (
	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/gin-gonic/gin"
)

// Store is the backend state the handlers operate on. store.Memory implements
// it; the api package wires the two together.
type Store interface {
	Authenticate(initData string) (string, backend.User, error)
	Lookup(token string) (backend.ID, bool)
	User(id backend.ID) (backend.User, error)
	Points(id backend.ID) (int64, error)
	RecordClicks(token string, ts int64, credit int64) (int64, error)
	Tasks(id backend.ID) ([]backend.Task, error)
	StartTask(id backend.ID, taskID string) error
	ClaimTask(id backend.ID, taskID string) (int64, error)
	Ranking(userID string) backend.Ranking
}

// Context keys set by the bearer middleware.
const (
	ContextToken  = "sakaton.token"
	ContextUserID = "sakaton.user_id"
)

// sessionFrom reads what the bearer middleware stored.
func sessionFrom(c *gin.Context) (string, backend.ID) {
	token := c.GetString(ContextToken)
	id, _ := c.Get(ContextUserID)
	userID, _ := id.(backend.ID)
	return token, userID
}

// abortError writes the standard error body.
func abortError(c *gin.Context, status int, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}
