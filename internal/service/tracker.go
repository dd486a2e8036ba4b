// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; this layer enforces the rules of
// the tracker (who may be logged against, what counts as a valid duration or
// date, how the log window is resolved) against the repository interfaces.
// It knows nothing about HTTP — errors come back as apperror values and the
// handler layer translates them to status codes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
	"github.com/sakif/exercise-tracker/internal/validate"
)

// dateLayout is the yyyy-mm-dd form accepted for exercise dates and log
// range bounds.
const dateLayout = "2006-01-02"

// Log window defaults when from/to are absent or unparseable. They stand in
// for "the minimum/maximum representable date" — every stored exercise falls
// inside them.
var (
	minLogDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	maxLogDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Tracker handles the four operations of the exercise tracker.
type Tracker struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	logger    *slog.Logger
}

// NewTracker creates a Tracker. The repositories are interfaces so tests can
// substitute in-memory fakes.
func NewTracker(users repository.UserRepository, exercises repository.ExerciseRepository, logger *slog.Logger) *Tracker {
	return &Tracker{
		users:     users,
		exercises: exercises,
		logger:    logger,
	}
}

// CreateUser persists a new user and returns the stored record, re-fetched
// from the repository so the caller sees exactly what was saved.
// A duplicate username comes back as the domain's duplicate error.
func (t *Tracker) CreateUser(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.ValidationFailed("username", "username is required")
	}

	user := &model.User{Username: username}
	if err := t.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, err
		}
		t.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	stored, err := t.users.GetByID(ctx, user.ID)
	if err != nil {
		t.logger.Error("failed to re-fetch created user",
			slog.String("id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetching created user: %w", err)
	}

	t.logger.Info("user created",
		slog.String("id", stored.ID),
		slog.String("username", stored.Username),
	)

	return stored, nil
}

// ListUsers returns every stored user record.
func (t *Tracker) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := t.users.List(ctx)
	if err != nil {
		t.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// AddExercise saves an exercise for a user and returns both records.
//
// The flow mirrors the store's lack of referential integrity: save the
// exercise first, then verify the user exists, and delete the just-created
// row if the verification fails. The cleanup is best-effort, but under
// normal operation a failed add never leaves an orphaned exercise visible.
// A missing user is always reported as a concrete UserNotFound error.
func (t *Tracker) AddExercise(ctx context.Context, userID, description, duration, date string) (*model.User, *model.Exercise, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil, apperror.ValidationFailed("userId", "userId is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, nil, apperror.ValidationFailed("description", "description is required")
	}
	if !validate.IsValidInt(duration) {
		return nil, nil, apperror.ValidationFailed("duration", "Invalid duration type. Must be an int.")
	}
	minutes, err := strconv.Atoi(duration)
	if err != nil {
		return nil, nil, apperror.ValidationFailed("duration", "Invalid duration type. Must be an int.")
	}

	// Date defaults to "now" when absent. All exercise dates are kept in
	// UTC so the date shown on the add response matches the one a later
	// log read renders from the store. A date that passes the syntactic
	// check can still be calendar-impossible (month 19, day 39); those fail
	// here at parse time and are rejected like any other bad date.
	when := time.Now().UTC()
	if validate.IsValidDate(date) {
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, nil, apperror.ValidationFailed("date", "Invalid date format. Need to be yyyy-mm-dd")
		}
		when = parsed
	}

	exercise := &model.Exercise{
		UserID:      userID,
		Description: description,
		Duration:    minutes,
		Date:        when,
	}
	if err := t.exercises.Create(ctx, exercise); err != nil {
		t.deleteExercise(ctx, exercise.ID)
		t.logger.Error("failed to save exercise",
			slog.String("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("saving exercise: %w", err)
	}

	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		t.deleteExercise(ctx, exercise.ID)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, nil, apperror.UserNotFound(userID)
		}
		t.logger.Error("failed to look up exercise owner",
			slog.String("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, nil, apperror.Storage()
	}

	t.logger.Info("exercise added",
		slog.String("id", exercise.ID),
		slog.String("userId", user.ID),
		slog.Int("duration", exercise.Duration),
	)

	return user, exercise, nil
}

// deleteExercise is the best-effort compensating delete used when an add
// cannot complete. A failure here is logged, not returned — the original
// error is the one the caller needs to see.
func (t *Tracker) deleteExercise(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := t.exercises.Delete(ctx, id); err != nil {
		t.logger.Error("failed to clean up exercise after aborted add",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
	}
}

// Log is the result of a GetLog query.
type Log struct {
	User    *model.User
	Count   int
	Entries []model.Exercise
}

// GetLog returns a user's exercise log, filtered and truncated.
//
// limit, from and to arrive as raw query strings. An unparseable limit means
// "no limit"; an unparseable bound falls back to the minimum or maximum
// date, so the window covers everything. Count echoes the limit whenever one
// was given — even if fewer entries matched — otherwise it is the number of
// entries returned.
//
// A user that doesn't exist is UserNotFound; a store failure during the
// query is a distinct storage error, not folded into the user error.
func (t *Tracker) GetLog(ctx context.Context, userID, from, to, limit string) (*Log, error) {
	filter := repository.LogFilter{From: minLogDate, To: maxLogDate}

	if validate.IsValidInt(limit) {
		if n, err := strconv.Atoi(limit); err == nil {
			filter.Limit = n
		}
	}
	if validate.IsValidDate(from) {
		if parsed, err := time.Parse(dateLayout, from); err == nil {
			filter.From = parsed
		}
	}
	if validate.IsValidDate(to) {
		if parsed, err := time.Parse(dateLayout, to); err == nil {
			filter.To = parsed
		}
	}

	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.UserNotFound(userID)
		}
		t.logger.Error("failed to look up log owner",
			slog.String("userId", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage()
	}

	entries, err := t.exercises.ListByUser(ctx, user.ID, filter)
	if err != nil {
		t.logger.Error("failed to query exercise log",
			slog.String("userId", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Storage()
	}

	count := filter.Limit
	if count == 0 {
		count = len(entries)
	}

	return &Log{User: user, Count: count, Entries: entries}, nil
}
