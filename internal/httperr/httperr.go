package httperr

import (
	"errors"
	"log"
	"net/http"

	"todo-presets-backend/internal/todo"
)

// Status maps domain error kinds to HTTP status codes. An oversized
// request body is 413.
func Status(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, todo.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, todo.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write sends err with the matching status. Unexpected errors are logged.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	}
	http.Error(w, err.Error(), code)
}
