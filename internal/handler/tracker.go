// Package handler contains the HTTP request handlers for the tracker API.
//
// Handlers are the glue between HTTP and the service layer: they parse
// request input (form fields, JSON bodies, query params), run the two
// pre-checks the API contract requires on add-exercise, and hand results or
// errors to the shared responder. Business rules live in internal/service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/service"
	"github.com/sakif/exercise-tracker/internal/validate"
)

// calendarLayout renders dates the way the API has always shown them,
// e.g. "Mon Jan 02 2006".
const calendarLayout = "Mon Jan 02 2006"

// TrackerHandler exposes the four tracker endpoints.
type TrackerHandler struct {
	tracker *service.Tracker
	logger  *slog.Logger
}

// NewTrackerHandler creates a TrackerHandler.
func NewTrackerHandler(tracker *service.Tracker, logger *slog.Logger) *TrackerHandler {
	return &TrackerHandler{
		tracker: tracker,
		logger:  logger,
	}
}

// RegisterRoutes wires the endpoints onto the given router. The server
// mounts this under /api/exercise.
func (h *TrackerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.HandleListUsers)
	r.Get("/log", h.HandleLog)
	r.Post("/new-user", h.HandleNewUser)
	r.Post("/add", h.HandleAddExercise)
}

// userView is the projection returned by new-user: just id and username,
// no timestamps.
type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// exerciseView is the add-exercise response: the owner's id and username
// plus the saved entry, with the date as a calendar string.
type exerciseView struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

type logEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

type logView struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Count    int        `json:"count"`
	Log      []logEntry `json:"log"`
}

// HandleNewUser creates a user.
//
// HTTP: POST /api/exercise/new-user
func (h *TrackerHandler) HandleNewUser(w http.ResponseWriter, r *http.Request) {
	form, err := parseBody(r)
	if err != nil {
		h.logger.Warn("invalid new-user body", slog.String("error", err.Error()))
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid request body"))
		return
	}

	user, err := h.tracker.CreateUser(r.Context(), form.Get("username"))
	if err != nil {
		respond(w, h.logger, nil, err)
		return
	}

	respond(w, h.logger, userView{ID: user.ID, Username: user.Username}, nil)
}

// HandleListUsers returns every stored user record, timestamps included.
//
// HTTP: GET /api/exercise/users
func (h *TrackerHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.tracker.ListUsers(r.Context())
	respond(w, h.logger, users, err)
}

// HandleAddExercise logs an exercise for a user.
//
// HTTP: POST /api/exercise/add
//
// duration and date are checked here, before the store is touched: a
// non-integer duration and a present-but-malformed date are both rejected
// with their historical messages. An omitted date is fine — the entry is
// dated "now".
func (h *TrackerHandler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	form, err := parseBody(r)
	if err != nil {
		h.logger.Warn("invalid add-exercise body", slog.String("error", err.Error()))
		writeError(w, h.logger, apperror.ValidationFailed("body", "invalid request body"))
		return
	}

	if !validate.IsValidInt(form.Get("duration")) {
		writeError(w, h.logger, apperror.ValidationFailed("duration", "Invalid duration type. Must be an int."))
		return
	}
	if date := form.Get("date"); date != "" && !validate.IsValidDate(date) {
		writeError(w, h.logger, apperror.ValidationFailed("date", "Invalid date format. Need to be yyyy-mm-dd"))
		return
	}

	user, exercise, err := h.tracker.AddExercise(r.Context(),
		form.Get("userId"),
		form.Get("description"),
		form.Get("duration"),
		form.Get("date"),
	)
	if err != nil {
		respond(w, h.logger, nil, err)
		return
	}

	respond(w, h.logger, exerciseView{
		ID:          user.ID,
		Username:    user.Username,
		Date:        exercise.Date.Format(calendarLayout),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	}, nil)
}

// HandleLog returns a user's exercise log with optional from/to/limit.
//
// HTTP: GET /api/exercise/log?userId=...&from=...&to=...&limit=...
//
// A missing userId is rejected before the operation runs.
func (h *TrackerHandler) HandleLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	userID := query.Get("userId")
	if userID == "" {
		writeError(w, h.logger, apperror.UserNotFound(userID))
		return
	}

	log, err := h.tracker.GetLog(r.Context(), userID,
		query.Get("from"),
		query.Get("to"),
		query.Get("limit"),
	)
	if err != nil {
		respond(w, h.logger, nil, err)
		return
	}

	respond(w, h.logger, toLogView(log), nil)
}

func toLogView(log *service.Log) logView {
	entries := make([]logEntry, 0, len(log.Entries))
	for _, ex := range log.Entries {
		entries = append(entries, logEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date.Format(calendarLayout),
		})
	}
	return logView{
		ID:       log.User.ID,
		Username: log.User.Username,
		Count:    log.Count,
		Log:      entries,
	}
}

// parseBody reads request fields from either an urlencoded form (the classic
// HTML form case) or a JSON object body, normalized to url.Values so the
// handlers read both the same way. JSON numbers are stringified because the
// duration check operates on the raw string form.
func parseBody(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var raw map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		values := url.Values{}
		for key, val := range raw {
			switch v := val.(type) {
			case string:
				values.Set(key, v)
			case float64:
				values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
			case bool:
				values.Set(key, strconv.FormatBool(v))
			}
		}
		return values, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
