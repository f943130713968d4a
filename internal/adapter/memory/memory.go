// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"steptrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	sessions map[string]*domain.Session
	steps    []domain.StepRecord

	userIDCounter int64
	stepIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.StepRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user, enforcing username and email uniqueness.
func (db *DB) Create(ctx context.Context, username, email, passwordHash string, isAdmin bool) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
		if u.Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// List returns all users in registration order.
func (db *DB) List(ctx context.Context) ([]*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]*domain.User, len(db.users))
	copy(out, db.users)
	return out, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- StepRepository ---

// UpsertSteps inserts or overwrites the count for (user, day). The mutex
// serializes concurrent submissions, matching the atomicity the unique
// constraint provides in Postgres.
func (db *DB) UpsertSteps(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now().UTC()
	for i := range db.steps {
		if db.steps[i].UserID == userID && db.steps[i].Day == day {
			db.steps[i].Steps = steps
			db.steps[i].UpdatedAt = now
			rec := db.steps[i]
			return &rec, nil
		}
	}

	db.stepIDCounter++
	rec := domain.StepRecord{
		ID:        db.stepIDCounter,
		UserID:    userID,
		Day:       day,
		Steps:     steps,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.steps = append(db.steps, rec)
	return &rec, nil
}

// StepsForDay returns the recorded count for a day, 0 when absent.
func (db *DB) StepsForDay(ctx context.Context, userID int64, day string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range db.steps {
		if r.UserID == userID && r.Day == day {
			return r.Steps, nil
		}
	}
	return 0, nil
}

// AllByUser returns every record of a user as a day -> steps map.
func (db *DB) AllByUser(ctx context.Context, userID int64) (map[string]int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make(map[string]int64)
	for _, r := range db.steps {
		if r.UserID == userID {
			out[r.Day] = r.Steps
		}
	}
	return out, nil
}

// ListRange returns a user's records within [fromDay, toDay], ascending.
func (db *DB) ListRange(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.StepRecord
	for _, r := range db.steps {
		// Day strings in DayFormat compare correctly as strings.
		if r.UserID == userID && r.Day >= fromDay && r.Day <= toDay {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// ListByUserDesc returns all of a user's records, newest day first.
func (db *DB) ListByUserDesc(ctx context.Context, userID int64) ([]domain.StepRecord, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.StepRecord
	for _, r := range db.steps {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day > out[j].Day })
	return out, nil
}

// CountRecords returns the total number of step records across users.
func (db *DB) CountRecords(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.steps), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
