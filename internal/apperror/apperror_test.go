package apperror

import (
	"errors"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("username", "username is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UsernameTaken wraps ErrConflict",
			err:       UsernameTaken(),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "UserNotFound is validation-class",
			err:       UserNotFound("abc123"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "UserNotFound does NOT match ErrNotFound",
			err:       UserNotFound("abc123"),
			target:    ErrNotFound,
			wantMatch: false,
		},
		{
			name:      "Timeout wraps ErrTimeout",
			err:       Timeout(),
			target:    ErrTimeout,
			wantMatch: true,
		},
		{
			name:      "Storage wraps ErrStorage",
			err:       Storage(),
			target:    ErrStorage,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("user", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("user", "abc123"),
			wantMessage: "user not found with id abc123",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("username", "username is required"),
			wantMessage: "username is required",
		},
		{
			name:        "UsernameTaken uses the historical message",
			err:         UsernameTaken(),
			wantMessage: "Username already taken.",
		},
		{
			name:        "UserNotFound uses the historical message",
			err:         UserNotFound("abc123"),
			wantMessage: "Invalid userId.",
		},
		{
			name:        "Timeout message is bare",
			err:         Timeout(),
			wantMessage: "timeout",
		},
		{
			name:        "Storage hides the cause",
			err:         Storage(),
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("duration", "Invalid duration type. Must be an int.")

	if err.Field != "duration" {
		t.Errorf("Field = %q, want %q", err.Field, "duration")
	}
}

func TestUserNotFoundField(t *testing.T) {
	err := UserNotFound("whatever")

	if err.Field != "userId" {
		t.Errorf("Field = %q, want %q", err.Field, "userId")
	}
}
