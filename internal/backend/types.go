package backend

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ClickRequest is the body of POST /click. The token itself travels only in
// the Authorization header.
type ClickRequest struct {
	Timestamp int64  `json:"timestamp" binding:"required,gt=0"`
	Hash      string `json:"hash" binding:"required,hexadecimal,len=64"`
}

// AuthenticateRequest carries the Telegram WebApp init data.
type AuthenticateRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// AuthenticateResponse returns the session token.
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// TaskRequest names a task for start-task and claim-task.
type TaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
}

// ID is a user identifier that the backend may encode as a JSON number
// (Telegram user ids) or a string.
type ID string

// UnmarshalJSON accepts both string and numeric encodings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits canonical integers as numbers and everything else, such
// as "+5" or "007", as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// User is the profile returned by GET /getUser.
type User struct {
	ID            ID     `json:"id"`
	FirstName     string `json:"first_name"`
	ReferallCount int    `json:"referall_count"`
}

// UserResponse wraps User as the backend sends it.
type UserResponse struct {
	User User `json:"user"`
}

// PointsResponse is the body of GET /getPoints.
type PointsResponse struct {
	Points int64 `json:"points"`
}

// Task is one entry of GET /tasks.
type Task struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Points    int64  `json:"points"`
	Link      string `json:"link"`
	Completed bool   `json:"completed"`
	Started   bool   `json:"started"`
}

// TaskStatus is the action a task currently offers.
type TaskStatus string

const (
	TaskIdle      TaskStatus = "idle"      // can be started
	TaskClaimable TaskStatus = "claimable" // started, reward can be claimed
	TaskDone      TaskStatus = "done"      // reward already claimed
)

// Status derives the task's current action from its flags.
func (t Task) Status() TaskStatus {
	switch {
	case t.Completed:
		return TaskDone
	case t.Started:
		return TaskClaimable
	default:
		return TaskIdle
	}
}

// TasksResponse is the body of GET /tasks.
type TasksResponse struct {
	Tasks []Task `json:"tasks"`
}

// RankEntry is one row of the leaderboard.
type RankEntry struct {
	ID          ID     `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Points      int64  `json:"points"`
}

// Ranking is the body of GET /getRanking.
type Ranking struct {
	Ranking    []RankEntry `json:"ranking"`
	UserRank   *int        `json:"userRank"`
	UserPoints *int64      `json:"userPoints"`
}

// Top returns at most n leading entries.
func (r *Ranking) Top(n int) []RankEntry {
	if n < 0 || len(r.Ranking) <= n {
		return r.Ranking
	}
	return r.Ranking[:n]
}
