package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// day builds a UTC midnight date, the same shape the service stores for
// exercises created with an explicit yyyy-mm-dd date.
func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// wideOpen covers every storable date.
var wideOpen = repository.LogFilter{
	From: day(1, time.January, 1),
	To:   day(9999, time.December, 31),
}

func createTestExercise(t *testing.T, e *ExerciseDB, userID, description string, duration int, date time.Time) *model.Exercise {
	t.Helper()
	ex := &model.Exercise{
		UserID:      userID,
		Description: description,
		Duration:    duration,
		Date:        date,
	}
	if err := e.Create(context.Background(), ex); err != nil {
		t.Fatalf("failed to create test exercise: %v", err)
	}
	return ex
}

func TestExerciseCreate(t *testing.T) {
	e := newTestDB(t).Exercises()

	ex := &model.Exercise{
		UserID:      "user-1",
		Description: "running",
		Duration:    30,
		Date:        day(2020, time.March, 15),
	}
	if err := e.Create(context.Background(), ex); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if ex.ID == "" {
		t.Error("Create() did not set exercise.ID")
	}
	if ex.CreatedAt.IsZero() {
		t.Error("Create() did not set exercise.CreatedAt")
	}

	// Round-trip: the stored date must come back as the same instant.
	got, err := e.ListByUser(context.Background(), "user-1", wideOpen)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListByUser() returned %d exercises, want 1", len(got))
	}
	if !got[0].Date.Equal(day(2020, time.March, 15)) {
		t.Errorf("stored date = %v, want %v", got[0].Date, day(2020, time.March, 15))
	}
}

func TestExerciseDelete(t *testing.T) {
	e := newTestDB(t).Exercises()
	ex := createTestExercise(t, e, "user-1", "rowing", 20, day(2020, time.March, 1))

	if err := e.Delete(context.Background(), ex.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	got, err := e.ListByUser(context.Background(), "user-1", wideOpen)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByUser() returned %d exercises after delete, want 0", len(got))
	}
}

func TestExerciseDelete_MissingIDIsNotAnError(t *testing.T) {
	e := newTestDB(t).Exercises()

	// The compensating delete in the add flow may run for an insert that
	// never landed; that must be a no-op, not an error.
	if err := e.Delete(context.Background(), "never-existed"); err != nil {
		t.Errorf("Delete() error = %v, want nil", err)
	}
}

func TestExerciseListByUser_SortedAscending(t *testing.T) {
	e := newTestDB(t).Exercises()

	// Inserted out of order on purpose.
	createTestExercise(t, e, "user-1", "third", 10, day(2020, time.May, 3))
	createTestExercise(t, e, "user-1", "first", 10, day(2020, time.May, 1))
	createTestExercise(t, e, "user-1", "second", 10, day(2020, time.May, 2))

	got, err := e.ListByUser(context.Background(), "user-1", wideOpen)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByUser() returned %d exercises, want 3", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Description != want {
			t.Errorf("entry %d = %q, want %q", i, got[i].Description, want)
		}
	}
}

func TestExerciseListByUser_RangeIsInclusive(t *testing.T) {
	e := newTestDB(t).Exercises()

	createTestExercise(t, e, "user-1", "before", 10, day(2020, time.May, 1))
	createTestExercise(t, e, "user-1", "on from", 10, day(2020, time.May, 2))
	createTestExercise(t, e, "user-1", "inside", 10, day(2020, time.May, 3))
	createTestExercise(t, e, "user-1", "on to", 10, day(2020, time.May, 4))
	createTestExercise(t, e, "user-1", "after", 10, day(2020, time.May, 5))

	got, err := e.ListByUser(context.Background(), "user-1", repository.LogFilter{
		From: day(2020, time.May, 2),
		To:   day(2020, time.May, 4),
	})
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("ListByUser() returned %d exercises, want 3", len(got))
	}
	for i, want := range []string{"on from", "inside", "on to"} {
		if got[i].Description != want {
			t.Errorf("entry %d = %q, want %q", i, got[i].Description, want)
		}
	}
}

func TestExerciseListByUser_Limit(t *testing.T) {
	e := newTestDB(t).Exercises()

	for d := 1; d <= 5; d++ {
		createTestExercise(t, e, "user-1", "workout", 10, day(2020, time.June, d))
	}

	filter := wideOpen
	filter.Limit = 2
	got, err := e.ListByUser(context.Background(), "user-1", filter)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByUser() with limit 2 returned %d exercises", len(got))
	}

	// The limit takes the earliest entries, because sorting happens first.
	if !got[0].Date.Equal(day(2020, time.June, 1)) || !got[1].Date.Equal(day(2020, time.June, 2)) {
		t.Errorf("limited dates = %v, %v; want June 1 and June 2", got[0].Date, got[1].Date)
	}
}

func TestExerciseListByUser_OtherUsersExcluded(t *testing.T) {
	e := newTestDB(t).Exercises()

	createTestExercise(t, e, "user-1", "mine", 10, day(2020, time.July, 1))
	createTestExercise(t, e, "user-2", "theirs", 10, day(2020, time.July, 1))

	got, err := e.ListByUser(context.Background(), "user-1", wideOpen)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(got) != 1 || got[0].Description != "mine" {
		t.Errorf("ListByUser() = %+v, want only the user-1 entry", got)
	}
}

func TestExerciseCreate_EmptyDescriptionRejected(t *testing.T) {
	e := newTestDB(t).Exercises()

	ex := &model.Exercise{
		UserID:   "user-1",
		Duration: 10,
		Date:     day(2020, time.July, 1),
	}
	if err := e.Create(context.Background(), ex); err == nil {
		t.Error("Create() should have failed for an empty description")
	}
}
