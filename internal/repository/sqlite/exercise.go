package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// compile-time check that *ExerciseDB implements repository.ExerciseRepository
var _ repository.ExerciseRepository = (*ExerciseDB)(nil)

// ExerciseDB provides exercise persistence over the shared connection pool.
type ExerciseDB struct {
	conn *sql.DB
}

// encodeDate renders a timestamp in the fixed RFC 3339 UTC form the date
// column stores. Sub-second precision is dropped so every value has the same
// length and string order matches time order.
func encodeDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func decodeDate(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// Create inserts a new exercise and fills in the generated ID and timestamp.
func (e *ExerciseDB) Create(ctx context.Context, exercise *model.Exercise) error {
	exercise.ID = xid.New().String()
	exercise.CreatedAt = time.Now()

	_, err := e.conn.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, description, duration, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exercise.ID,
		exercise.UserID,
		exercise.Description,
		exercise.Duration,
		encodeDate(exercise.Date),
		exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting exercise for user %s: %w", exercise.UserID, err)
	}

	return nil
}

// Delete removes an exercise by ID. Deleting an ID that doesn't exist is not
// an error — this is the compensating step of the add-exercise flow, and it
// must be safe to call when the insert never landed.
func (e *ExerciseDB) Delete(ctx context.Context, id string) error {
	_, err := e.conn.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting exercise %s: %w", id, err)
	}
	return nil
}

// ListByUser returns a user's exercises with date in [filter.From, filter.To]
// inclusive, ascending by date. SQLite treats LIMIT -1 as "no limit", which
// maps our Limit==0 convention cleanly.
func (e *ExerciseDB) ListByUser(ctx context.Context, userID string, filter repository.LogFilter) ([]model.Exercise, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}

	rows, err := e.conn.QueryContext(ctx,
		`SELECT id, user_id, description, duration, date, created_at
		 FROM exercises
		 WHERE user_id = ? AND date >= ? AND date <= ?
		 ORDER BY date ASC, id ASC
		 LIMIT ?`,
		userID,
		encodeDate(filter.From),
		encodeDate(filter.To),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises for user %s: %w", userID, err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var (
			ex      model.Exercise
			rawDate string
		)
		if err := rows.Scan(
			&ex.ID, &ex.UserID, &ex.Description, &ex.Duration, &rawDate, &ex.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		if ex.Date, err = decodeDate(rawDate); err != nil {
			return nil, fmt.Errorf("sqlite: decoding exercise date %q: %w", rawDate, err)
		}
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}
