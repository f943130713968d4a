package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"steptrack/internal/domain"
)

type mockStepRepo struct {
	upsertFn   func(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error)
	forDayFn   func(ctx context.Context, userID int64, day string) (int64, error)
	allFn      func(ctx context.Context, userID int64) (map[string]int64, error)
	rangeFn    func(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error)
	listDescFn func(ctx context.Context, userID int64) ([]domain.StepRecord, error)
	countFn    func(ctx context.Context) (int, error)
}

func (m *mockStepRepo) UpsertSteps(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, userID, day, steps)
	}
	return &domain.StepRecord{ID: 1, UserID: userID, Day: day, Steps: steps}, nil
}

func (m *mockStepRepo) StepsForDay(ctx context.Context, userID int64, day string) (int64, error) {
	if m.forDayFn != nil {
		return m.forDayFn(ctx, userID, day)
	}
	return 0, nil
}

func (m *mockStepRepo) AllByUser(ctx context.Context, userID int64) (map[string]int64, error) {
	if m.allFn != nil {
		return m.allFn(ctx, userID)
	}
	return map[string]int64{}, nil
}

func (m *mockStepRepo) ListRange(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, fromDay, toDay)
	}
	return nil, nil
}

func (m *mockStepRepo) ListByUserDesc(ctx context.Context, userID int64) ([]domain.StepRecord, error) {
	if m.listDescFn != nil {
		return m.listDescFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockStepRepo) CountRecords(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func TestSubmit_RejectsNonDigitInput(t *testing.T) {
	svc := NewStepsService(&mockStepRepo{
		upsertFn: func(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
			t.Fatal("no write may occur for invalid input")
			return nil, nil
		},
	})

	tests := []struct {
		name  string
		steps string
	}{
		{"empty", ""},
		{"letters", "abc"},
		{"negative", "-500"},
		{"plus sign", "+500"},
		{"decimal", "10.5"},
		{"whitespace", " 100"},
		{"mixed", "10k"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), 1, tc.steps, "2024-06-01")
			if !errors.Is(err, ErrInvalidSteps) {
				t.Fatalf("expected ErrInvalidSteps, got %v", err)
			}
		})
	}
}

func TestSubmit_RejectsMalformedDate(t *testing.T) {
	svc := NewStepsService(&mockStepRepo{
		upsertFn: func(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
			t.Fatal("no write may occur for invalid input")
			return nil, nil
		},
	})

	for _, day := range []string{"01-06-2024", "2024/06/01", "2024-6-1", "yesterday", "2024-13-01"} {
		_, err := svc.Submit(context.Background(), 1, "1000", day)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("expected ErrInvalidDate for %q, got %v", day, err)
		}
	}
}

func TestSubmit_DefaultsToToday(t *testing.T) {
	var gotDay string
	svc := NewStepsService(&mockStepRepo{
		upsertFn: func(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
			gotDay = day
			return &domain.StepRecord{ID: 1, UserID: userID, Day: day, Steps: steps}, nil
		},
	})

	_, err := svc.Submit(context.Background(), 1, "8000", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Now().In(time.Local).Format(domain.DayFormat)
	if gotDay != want {
		t.Errorf("expected day %s, got %s", want, gotDay)
	}
}

func TestSubmit_PassesThroughValues(t *testing.T) {
	svc := NewStepsService(&mockStepRepo{
		upsertFn: func(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
			if userID != 7 || day != "2024-02-29" || steps != 12345 {
				t.Errorf("unexpected upsert args: %d %s %d", userID, day, steps)
			}
			return &domain.StepRecord{ID: 3, UserID: userID, Day: day, Steps: steps}, nil
		},
	})

	rec, err := svc.Submit(context.Background(), 7, "12345", "2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 3 || rec.Steps != 12345 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestSubmit_ZeroIsValid(t *testing.T) {
	svc := NewStepsService(&mockStepRepo{})
	rec, err := svc.Submit(context.Background(), 1, "0", "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Steps != 0 {
		t.Errorf("expected 0 steps, got %d", rec.Steps)
	}
}

func TestStepsForDay_Empty(t *testing.T) {
	svc := NewStepsService(&mockStepRepo{})
	steps, err := svc.StepsForDay(context.Background(), 1, "2024-06-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps != 0 {
		t.Errorf("expected 0, got %d", steps)
	}
}
