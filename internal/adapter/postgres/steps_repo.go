package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"steptrack/internal/domain"
)

// UpsertSteps inserts the day's count or overwrites an existing one. The
// ON CONFLICT clause makes the insert-or-update atomic against the
// (user_id, day) unique constraint, so concurrent submissions for the same
// day never produce two rows.
func (d *DB) UpsertSteps(ctx context.Context, userID int64, day string, steps int64) (*domain.StepRecord, error) {
	now := time.Now()
	var rec domain.StepRecord
	var dayT time.Time
	err := d.sql.QueryRowContext(ctx,
		`INSERT INTO step_records (user_id, day, steps, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, day) DO UPDATE SET steps = EXCLUDED.steps, updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, day, steps, created_at, updated_at`,
		userID, day, steps, now,
	).Scan(&rec.ID, &rec.UserID, &dayT, &rec.Steps, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rec.Day = dayT.Format(domain.DayFormat)
	return &rec, nil
}

// StepsForDay returns the recorded count for a day, 0 when absent.
func (d *DB) StepsForDay(ctx context.Context, userID int64, day string) (int64, error) {
	var steps int64
	err := d.sql.QueryRowContext(ctx,
		"SELECT steps FROM step_records WHERE user_id = $1 AND day = $2",
		userID, day,
	).Scan(&steps)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return steps, err
}

// AllByUser returns every record of a user as a day -> steps map.
func (d *DB) AllByUser(ctx context.Context, userID int64) (map[string]int64, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, steps FROM step_records WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var day time.Time
		var steps int64
		if err := rows.Scan(&day, &steps); err != nil {
			return nil, err
		}
		out[day.Format(domain.DayFormat)] = steps
	}
	return out, rows.Err()
}

// ListRange returns a user's records with fromDay <= day <= toDay,
// ascending by day.
func (d *DB) ListRange(ctx context.Context, userID int64, fromDay, toDay string) ([]domain.StepRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, day, steps, created_at, updated_at FROM step_records
		WHERE user_id = $1 AND day >= $2 AND day <= $3 ORDER BY day`,
		userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByUserDesc returns all of a user's records, newest day first.
func (d *DB) ListByUserDesc(ctx context.Context, userID int64) ([]domain.StepRecord, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, day, steps, created_at, updated_at FROM step_records
		WHERE user_id = $1 ORDER BY day DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// CountRecords returns the total number of step records across users.
func (d *DB) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := d.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM step_records").Scan(&count)
	return count, err
}

func scanRecords(rows *sql.Rows) ([]domain.StepRecord, error) {
	var out []domain.StepRecord
	for rows.Next() {
		var rec domain.StepRecord
		var day time.Time
		if err := rows.Scan(&rec.ID, &rec.UserID, &day, &rec.Steps, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Day = day.Format(domain.DayFormat)
		out = append(out, rec)
	}
	return out, rows.Err()
}
