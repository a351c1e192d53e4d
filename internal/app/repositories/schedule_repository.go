package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peiyu/classmeet/internal/app/models"
	"github.com/peiyu/classmeet/internal/pkg/apperrors"
)

// ScheduleRepository handles database operations for user schedules
type ScheduleRepository struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetByUserID retrieves the schedule of a user. Users that have never
// written a schedule have no row, which surfaces as ErrResourceNotFound.
func (r *ScheduleRepository) GetByUserID(ctx context.Context, userID int64) (*models.Schedule, error) {
	query := `
		SELECT user_id, courses, busy_times, last_updated
		FROM schedules
		WHERE user_id = $1
	`

	var schedule models.Schedule
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&schedule.UserID,
		&schedule.Courses,
		&schedule.BusyTimes,
		&schedule.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &schedule, nil
}

// Upsert writes a user's full schedule, creating the row on first write
// and replacing both document columns on every subsequent one.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *models.Schedule) error {
	query := `
		INSERT INTO schedules (user_id, courses, busy_times, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET courses = EXCLUDED.courses,
		    busy_times = EXCLUDED.busy_times,
		    last_updated = NOW()
	`

	_, err := r.db.Exec(ctx, query, schedule.UserID, schedule.Courses, schedule.BusyTimes)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}

// Delete removes a user's schedule row. Deleting an absent schedule is
// not an error; the user simply returns to the empty-schedule state.
func (r *ScheduleRepository) Delete(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM schedules WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	return nil
}
