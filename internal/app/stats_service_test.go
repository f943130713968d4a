package app

import (
	"context"
	"testing"
	"time"

	"steptrack/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForPeriod_ZeroFillAverage(t *testing.T) {
	steps := &mockStepRepo{
		allFn: func(ctx context.Context, userID int64) (map[string]int64, error) {
			return map[string]int64{
				"2024-02-01": 10000,
				"2024-02-02": 5000,
			}, nil
		},
	}
	svc := NewStatsService(steps, &mockUserRepo{})

	stats, err := svc.ForPeriod(context.Background(), 1, domain.Period{Kind: domain.PeriodMonth, Year: 2024, Num: 2})
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodMonth, stats.Period)
	assert.Equal(t, 2024, stats.Year)
	assert.Equal(t, 2, stats.Num)
	assert.Len(t, stats.Dates, 29)
	// Diluted by the 27 unrecorded days, not an average of the 2 logged ones.
	assert.Equal(t, 517.24, stats.AverageSteps)
}

func TestForPeriod_NoRecords(t *testing.T) {
	svc := NewStatsService(&mockStepRepo{}, &mockUserRepo{})

	stats, err := svc.ForPeriod(context.Background(), 1, domain.Period{Kind: domain.PeriodWeek, Year: 2024, Num: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.AverageSteps)
	assert.Len(t, stats.Dates, 7)
}

func TestForPeriod_InvalidLocator(t *testing.T) {
	svc := NewStatsService(&mockStepRepo{
		allFn: func(ctx context.Context, userID int64) (map[string]int64, error) {
			t.Fatal("records must not be fetched for an invalid period")
			return nil, nil
		},
	}, &mockUserRepo{})

	_, err := svc.ForPeriod(context.Background(), 1, domain.Period{Kind: domain.PeriodQuarter, Year: 2024, Num: 5})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestAdminOverview_WindowAndSorting(t *testing.T) {
	today := time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC)

	users := &mockUserRepo{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, Username: "alice", Email: "alice@example.com"},
				{ID: 2, Username: "bob", Email: "bob@example.com"},
				{ID: 3, Username: "carol", Email: "carol@example.com"},
			}, nil
		},
	}
	steps := &mockStepRepo{
		rangeFn: func(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error) {
			// Window is today minus 6 days through today.
			assert.Equal(t, "2024-06-04", fromDay)
			assert.Equal(t, "2024-06-10", toDay)
			switch userID {
			case 1:
				return []domain.StepRecord{
					{UserID: 1, Day: "2024-06-09", Steps: 4000},
					{UserID: 1, Day: "2024-06-10", Steps: 5000},
				}, nil
			case 2:
				return []domain.StepRecord{
					{UserID: 2, Day: "2024-06-08", Steps: 20000},
				}, nil
			default:
				return nil, nil
			}
		},
		countFn: func(ctx context.Context) (int, error) { return 3, nil },
	}

	svc := NewStatsService(steps, users)
	overview, err := svc.AdminOverview(context.Background(), today)
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalUsers)
	assert.Equal(t, 3, overview.TotalStepRecords)
	require.Len(t, overview.Users, 3)

	// Sorted descending by total steps.
	assert.Equal(t, "bob", overview.Users[0].Username)
	assert.Equal(t, int64(20000), overview.Users[0].TotalSteps)
	assert.Equal(t, "alice", overview.Users[1].Username)
	assert.Equal(t, int64(9000), overview.Users[1].TotalSteps)
	assert.Equal(t, "carol", overview.Users[2].Username)
	assert.Equal(t, int64(0), overview.Users[2].TotalSteps)

	// Average over recorded days, with the day count alongside.
	assert.Equal(t, 4500.0, overview.Users[1].AvgSteps)
	assert.Equal(t, 2, overview.Users[1].DaysActive)
	assert.Equal(t, 0.0, overview.Users[2].AvgSteps)
	assert.Equal(t, 0, overview.Users[2].DaysActive)
}

func TestAdminUsers_RegistrationOrder(t *testing.T) {
	users := &mockUserRepo{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: 1, Username: "alice"},
				{ID: 2, Username: "bob"},
			}, nil
		},
	}
	steps := &mockStepRepo{
		rangeFn: func(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error) {
			if userID == 2 {
				return []domain.StepRecord{{UserID: 2, Day: "2024-06-08", Steps: 9999}}, nil
			}
			return nil, nil
		},
	}

	svc := NewStatsService(steps, users)
	reports, err := svc.AdminUsers(context.Background(), time.Now())
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "alice", reports[0].Username)
	assert.Equal(t, "bob", reports[1].Username)
}

func TestAdminUserDetail_NotFound(t *testing.T) {
	svc := NewStatsService(&mockStepRepo{}, &mockUserRepo{})
	_, err := svc.AdminUserDetail(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAdminUserDetail_Success(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil
		},
	}
	steps := &mockStepRepo{
		listDescFn: func(ctx context.Context, userID int64) ([]domain.StepRecord, error) {
			return []domain.StepRecord{
				{UserID: userID, Day: "2024-06-10", Steps: 5000},
				{UserID: userID, Day: "2024-06-09", Steps: 4000},
			}, nil
		},
	}

	svc := NewStatsService(steps, users)
	detail, err := svc.AdminUserDetail(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Username)
	require.Len(t, detail.Records, 2)
	assert.Equal(t, "2024-06-10", detail.Records[0].Day)
}
