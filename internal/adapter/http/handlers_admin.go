package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"steptrack/internal/app"
)

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	reports, err := s.stats.AdminUsers(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": reports})
}

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	overview, err := s.stats.AdminOverview(r.Context(), time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleAdminUserDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("user id must be an integer"))
		return
	}

	detail, err := s.stats.AdminUserDetail(r.Context(), id)
	if errors.Is(err, app.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}
