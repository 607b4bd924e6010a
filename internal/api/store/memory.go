// Package store holds the in-memory state of the development backend: users,
// session tokens, point balances, task progress and the replay marker for
// click submissions.
//
// Everything lives behind one RWMutex. State is lost on restart, which is the
// point: the dev backend exists to exercise the client end to end, not to keep
// data.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/concave-dev/sakaton/internal/backend"
	"github.com/concave-dev/sakaton/internal/names"
	"github.com/google/uuid"
)

var (
	// ErrInvalidInitData is returned when the init data cannot be parsed.
	ErrInvalidInitData = errors.New("invalid init data")

	// ErrReplay is returned for a click timestamp not newer than the last one
	// accepted for the same token.
	ErrReplay = errors.New("click timestamp already used")

	// ErrTaskNotFound is returned for an unknown task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskNotStarted is returned when claiming a task that was never started.
	ErrTaskNotStarted = errors.New("task not started")

	// ErrTaskCompleted is returned when starting or claiming a finished task.
	ErrTaskCompleted = errors.New("task already completed")

	// ErrUnknownUser is returned when a token maps to a user that no longer exists.
	ErrUnknownUser = errors.New("unknown user")
)

// DefaultTasks is the task catalog the dev backend serves.
func DefaultTasks() []backend.Task {
	return []backend.Task{
		{ID: "join_channel", Name: "Join the SakaTON channel", Points: 1000, Link: "https://t.me/sakaton"},
		{ID: "follow_x", Name: "Follow SakaTON on X", Points: 500, Link: "https://x.com/sakaton"},
		{ID: "invite_friend", Name: "Invite a friend", Points: 2500, Link: "https://t.me/share/url?url=https://t.me/sakaton_bot"},
	}
}

type userRecord struct {
	user      backend.User
	points    int64
	started   map[string]bool
	completed map[string]bool
}

// Memory is the in-memory store.
type Memory struct {
	mu        sync.RWMutex
	users     map[backend.ID]*userRecord
	sessions  map[string]backend.ID // token → user
	lastClick map[string]int64      // token → last accepted click timestamp
	catalog   []backend.Task
}

// NewMemory creates an empty store serving tasks. A nil catalog uses DefaultTasks.
func NewMemory(tasks []backend.Task) *Memory {
	if tasks == nil {
		tasks = DefaultTasks()
	}
	catalog := make([]backend.Task, len(tasks))
	for i, t := range tasks {
		catalog[i] = backend.Task{ID: t.ID, Name: t.Name, Points: t.Points, Link: t.Link}
	}
	return &Memory{
		users:     make(map[backend.ID]*userRecord),
		sessions:  make(map[string]backend.ID),
		lastClick: make(map[string]int64),
		catalog:   catalog,
	}
}

// telegramUser is the subset of the WebApp "user" field the store reads.
type telegramUser struct {
	ID        backend.ID `json:"id"`
	FirstName string     `json:"first_name"`
	Username  string     `json:"username"`
}

// parseInitData extracts the Telegram user from WebApp init data. Init data
// without a user field yields a zero user, which gets a generated id.
func parseInitData(initData string) (telegramUser, error) {
	var tg telegramUser

	values, err := url.ParseQuery(initData)
	if err != nil {
		return tg, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}
	raw := values.Get("user")
	if raw == "" {
		return tg, nil
	}
	if err := json.Unmarshal([]byte(raw), &tg); err != nil {
		return tg, fmt.Errorf("%w: user field: %v", ErrInvalidInitData, err)
	}
	return tg, nil
}

// Authenticate opens a new session for the user described by initData and
// returns its token. The same Telegram user id always maps to the same account.
// Init data signatures are not checked.
func (m *Memory) Authenticate(initData string) (string, backend.User, error) {
	tg, err := parseInitData(initData)
	if err != nil {
		return "", backend.User{}, err
	}

	id := tg.ID
	if id == "" {
		id = backend.ID(uuid.NewString())
	}
	name := tg.FirstName
	if name == "" {
		name = tg.Username
	}
	if name == "" {
		name = names.Generate()
	}

	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.users[id]
	if !ok {
		rec = &userRecord{
			user:      backend.User{ID: id, FirstName: name},
			started:   make(map[string]bool),
			completed: make(map[string]bool),
		}
		m.users[id] = rec
	}
	m.sessions[token] = id

	return token, rec.user, nil
}

// Lookup resolves a session token to its user id.
func (m *Memory) Lookup(token string) (backend.ID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.sessions[token]
	return id, ok
}

// User returns the profile for id.
func (m *Memory) User(id backend.ID) (backend.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[id]
	if !ok {
		return backend.User{}, ErrUnknownUser
	}
	return rec.user, nil
}

// Points returns the balance for id.
func (m *Memory) Points(id backend.ID) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.users[id]
	if !ok {
		return 0, ErrUnknownUser
	}
	return rec.points, nil
}

// RecordClicks credits a verified click batch. ts must be strictly greater
// than the last timestamp accepted for token; the new balance is returned.
func (m *Memory) RecordClicks(token string, ts int64, credit int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.sessions[token]
	if !ok {
		return 0, ErrUnknownUser
	}
	rec, ok := m.users[id]
	if !ok {
		return 0, ErrUnknownUser
	}
	if last, seen := m.lastClick[token]; seen && ts <= last {
		return 0, ErrReplay
	}

	m.lastClick[token] = ts
	rec.points += credit
	return rec.points, nil
}

// Tasks returns the catalog annotated with id's progress.
func (m *Memory) Tasks(id backend.ID) ([]backend.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.users[id]
	if !ok {
		return nil, ErrUnknownUser
	}
	tasks := make([]backend.Task, len(m.catalog))
	for i, t := range m.catalog {
		t.Started = rec.started[t.ID]
		t.Completed = rec.completed[t.ID]
		tasks[i] = t
	}
	return tasks, nil
}

func (m *Memory) findTask(taskID string) (backend.Task, bool) {
	for _, t := range m.catalog {
		if t.ID == taskID {
			return t, true
		}
	}
	return backend.Task{}, false
}

// StartTask marks taskID as started for id. Starting twice is allowed.
func (m *Memory) StartTask(id backend.ID, taskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.users[id]
	if !ok {
		return ErrUnknownUser
	}
	if _, ok := m.findTask(taskID); !ok {
		return ErrTaskNotFound
	}
	if rec.completed[taskID] {
		return ErrTaskCompleted
	}
	rec.started[taskID] = true
	return nil
}

// ClaimTask completes a started task and credits its reward, returning the
// new balance.
func (m *Memory) ClaimTask(id backend.ID, taskID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.users[id]
	if !ok {
		return 0, ErrUnknownUser
	}
	task, ok := m.findTask(taskID)
	if !ok {
		return 0, ErrTaskNotFound
	}
	if rec.completed[taskID] {
		return 0, ErrTaskCompleted
	}
	if !rec.started[taskID] {
		return 0, ErrTaskNotStarted
	}

	rec.completed[taskID] = true
	rec.points += task.Points
	return rec.points, nil
}

// Ranking orders every user by points, highest first, ties broken by id.
// When userID names a known user its 1-based rank and points are included.
func (m *Memory) Ranking(userID string) backend.Ranking {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]backend.RankEntry, 0, len(m.users))
	for _, rec := range m.users {
		entries = append(entries, backend.RankEntry{
			ID:          rec.user.ID,
			DisplayName: rec.user.FirstName,
			Points:      rec.points,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return strings.Compare(string(entries[i].ID), string(entries[j].ID)) < 0
	})

	ranking := backend.Ranking{Ranking: entries}
	if userID == "" {
		return ranking
	}
	for i, e := range entries {
		if string(e.ID) == userID {
			rank := i + 1
			points := e.Points
			ranking.UserRank = &rank
			ranking.UserPoints = &points
			break
		}
	}
	return ranking
}
