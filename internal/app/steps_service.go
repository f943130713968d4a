package app

import (
	"context"
	"errors"
	"strconv"
	"time"

	"steptrack/internal/domain"
)

var (
	// ErrInvalidSteps indicates a step count that is not a non-negative whole number.
	ErrInvalidSteps = errors.New("steps must be a non-negative whole number")
	// ErrInvalidDate indicates a date string not formatted as YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be formatted YYYY-MM-DD")
)

// StepsService encapsulates step submission and lookup use cases.
type StepsService struct {
	repo domain.StepRepository
}

// NewStepsService creates a StepsService backed by the given repository.
func NewStepsService(repo domain.StepRepository) *StepsService {
	return &StepsService{repo: repo}
}

// Submit validates and upserts a day's step count. The count arrives in its
// textual form and must be all digits; day may be empty, defaulting to
// today. Resubmitting a day overwrites the stored count in place.
func (s *StepsService) Submit(ctx context.Context, userID int64, steps, day string) (*domain.StepRecord, error) {
	n, err := parseSteps(steps)
	if err != nil {
		return nil, err
	}

	if day == "" {
		day = time.Now().In(time.Local).Format(domain.DayFormat)
	} else if _, err := time.Parse(domain.DayFormat, day); err != nil {
		return nil, ErrInvalidDate
	}

	return s.repo.UpsertSteps(ctx, userID, day, n)
}

// StepsForDay returns the recorded count for a day, 0 when none exists.
func (s *StepsService) StepsForDay(ctx context.Context, userID int64, day string) (int64, error) {
	return s.repo.StepsForDay(ctx, userID, day)
}

// parseSteps accepts only digit strings, mirroring the strictness of the
// submission form: no sign, no decimal point, no whitespace.
func parseSteps(s string) (int64, error) {
	if s == "" {
		return 0, ErrInvalidSteps
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidSteps
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidSteps
	}
	return n, nil
}
