package adapthttp

import (
	"errors"
	"net/http"
	"time"

	"steptrack/internal/app"
)

func (s *Server) handleSubmitSteps(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req struct {
		Steps string `json:"steps"`
		Date  string `json:"date"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	record, err := s.steps.Submit(r.Context(), user.ID, req.Steps, req.Date)
	if errors.Is(err, app.ErrInvalidSteps) || errors.Is(err, app.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "record": record})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	today := localDayString(time.Now())

	steps, err := s.steps.StepsForDay(r.Context(), user.ID, today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username": user.Username,
		"today":    today,
		"steps":    steps,
	})
}
