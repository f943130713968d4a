package domain

import (
	"context"
	"time"
)

// DayFormat is the calendar-day layout used everywhere a day travels as a
// string.
const DayFormat = "2006-01-02"

// StepRecord is one user's step count for one calendar day. At most one
// record exists per (user, day); resubmitting a day overwrites the count.
type StepRecord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Day       string    `json:"day"`
	Steps     int64     `json:"steps"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StepRepository is the port for step persistence.
type StepRepository interface {
	// UpsertSteps inserts the day's count or overwrites an existing one.
	// The insert-or-update must be atomic with respect to the (user, day)
	// uniqueness constraint.
	UpsertSteps(ctx context.Context, userID int64, day string, steps int64) (*StepRecord, error)
	// StepsForDay returns the recorded count for a day, 0 when absent.
	StepsForDay(ctx context.Context, userID int64, day string) (int64, error)
	// AllByUser returns every record of a user as a day -> steps map.
	AllByUser(ctx context.Context, userID int64) (map[string]int64, error)
	// ListRange returns a user's records with fromDay <= day <= toDay,
	// ascending by day.
	ListRange(ctx context.Context, userID int64, fromDay, toDay string) ([]StepRecord, error)
	// ListByUserDesc returns all of a user's records, newest day first.
	ListByUserDesc(ctx context.Context, userID int64) ([]StepRecord, error)
	// CountRecords returns the total number of step records across users.
	CountRecords(ctx context.Context) (int, error)
}
