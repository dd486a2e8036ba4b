package repository

import (
	"context"
	"time"

	"github.com/sakif/exercise-tracker/internal/model"
)

// LogFilter bounds an exercise-log query. From and To are inclusive.
// A Limit of 0 means "no limit".
type LogFilter struct {
	From  time.Time
	To    time.Time
	Limit int
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type ExerciseRepository interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string, filter LogFilter) ([]model.Exercise, error)
}
