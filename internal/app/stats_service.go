package app

import (
	"context"
	"math"
	"sort"
	"time"

	"steptrack/internal/domain"
)

// trailingWindowDays is the admin report window: today minus 6 days
// through today.
const trailingWindowDays = 7

// StatsService encapsulates period statistics and admin reporting.
type StatsService struct {
	steps domain.StepRepository
	users domain.UserRepository
}

// NewStatsService creates a StatsService backed by the given repositories.
func NewStatsService(steps domain.StepRepository, users domain.UserRepository) *StatsService {
	return &StatsService{steps: steps, users: users}
}

// PeriodStats is the result of averaging a user's counts over one period.
type PeriodStats struct {
	Period       domain.PeriodKind
	Year         int
	Num          int
	AverageSteps float64
	Dates        []string
}

// ForPeriod resolves the period to its date range and computes the
// zero-fill average over the user's records: unrecorded days count as
// zero and the denominator is the full period length.
func (s *StatsService) ForPeriod(ctx context.Context, userID int64, p domain.Period) (*PeriodStats, error) {
	dates, err := p.Dates()
	if err != nil {
		return nil, err
	}

	records, err := s.steps.AllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PeriodStats{
		Period:       p.Kind,
		Year:         p.Year,
		Num:          p.Num,
		AverageSteps: domain.AverageSteps(records, dates),
		Dates:        dates,
	}, nil
}

// UserReport summarizes one user's activity over the trailing week.
// AvgSteps averages over the days the user actually recorded, with
// DaysActive reported alongside.
type UserReport struct {
	ID         int64   `json:"id"`
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	TotalSteps int64   `json:"totalSteps"`
	AvgSteps   float64 `json:"avgSteps"`
	DaysActive int     `json:"daysActive"`
}

// Overview is the admin usage report.
type Overview struct {
	TotalUsers       int          `json:"totalUsers"`
	TotalStepRecords int          `json:"totalStepRecords"`
	Users            []UserReport `json:"users"`
}

// UserDetail is one user's full submission history.
type UserDetail struct {
	ID        int64               `json:"id"`
	Username  string              `json:"username"`
	Email     string              `json:"email"`
	CreatedAt time.Time           `json:"createdAt"`
	Records   []domain.StepRecord `json:"records"`
}

// AdminUsers reports every user's trailing-week activity, in registration
// order.
func (s *StatsService) AdminUsers(ctx context.Context, today time.Time) ([]UserReport, error) {
	return s.userReports(ctx, today)
}

// AdminOverview reports instance-wide totals plus per-user trailing-week
// activity sorted descending by total steps.
func (s *StatsService) AdminOverview(ctx context.Context, today time.Time) (*Overview, error) {
	reports, err := s.userReports(ctx, today)
	if err != nil {
		return nil, err
	}

	totalRecords, err := s.steps.CountRecords(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].TotalSteps > reports[j].TotalSteps
	})

	return &Overview{
		TotalUsers:       len(reports),
		TotalStepRecords: totalRecords,
		Users:            reports,
	}, nil
}

// AdminUserDetail returns one user's profile and full submission history,
// newest day first.
func (s *StatsService) AdminUserDetail(ctx context.Context, userID int64) (*UserDetail, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	records, err := s.steps.ListByUserDesc(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		Records:   records,
	}, nil
}

func (s *StatsService) userReports(ctx context.Context, today time.Time) ([]UserReport, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	fromDay := today.AddDate(0, 0, -(trailingWindowDays - 1)).Format(domain.DayFormat)
	toDay := today.Format(domain.DayFormat)

	reports := make([]UserReport, 0, len(users))
	for _, u := range users {
		recent, err := s.steps.ListRange(ctx, u.ID, fromDay, toDay)
		if err != nil {
			return nil, err
		}

		var total int64
		for _, r := range recent {
			total += r.Steps
		}
		var avg float64
		if len(recent) > 0 {
			avg = round2(float64(total) / float64(len(recent)))
		}

		reports = append(reports, UserReport{
			ID:         u.ID,
			Username:   u.Username,
			Email:      u.Email,
			TotalSteps: total,
			AvgSteps:   avg,
			DaysActive: len(recent),
		})
	}
	return reports, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
