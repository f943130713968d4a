package adapthttp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"steptrack/internal/domain"
)

func (s *Server) handleCurrentWeek(w http.ResponseWriter, r *http.Request) {
	s.servePeriod(w, r, domain.CurrentWeek(time.Now()))
}

func (s *Server) handleWeekN(w http.ResponseWriter, r *http.Request) {
	num, ok := pathNum(w, r)
	if !ok {
		return
	}
	s.servePeriod(w, r, domain.Period{Kind: domain.PeriodWeek, Year: time.Now().Year(), Num: num})
}

func (s *Server) handleCurrentMonth(w http.ResponseWriter, r *http.Request) {
	s.servePeriod(w, r, domain.CurrentMonth(time.Now()))
}

func (s *Server) handleMonthN(w http.ResponseWriter, r *http.Request) {
	num, ok := pathNum(w, r)
	if !ok {
		return
	}
	s.servePeriod(w, r, domain.Period{Kind: domain.PeriodMonth, Year: time.Now().Year(), Num: num})
}

func (s *Server) handleCurrentQuarter(w http.ResponseWriter, r *http.Request) {
	s.servePeriod(w, r, domain.CurrentQuarter(time.Now()))
}

func (s *Server) handleQuarterN(w http.ResponseWriter, r *http.Request) {
	num, ok := pathNum(w, r)
	if !ok {
		return
	}
	s.servePeriod(w, r, domain.Period{Kind: domain.PeriodQuarter, Year: time.Now().Year(), Num: num})
}

func (s *Server) handleCurrentYear(w http.ResponseWriter, r *http.Request) {
	s.servePeriod(w, r, domain.CurrentYear(time.Now()))
}

func (s *Server) handleYearN(w http.ResponseWriter, r *http.Request) {
	num, ok := pathNum(w, r)
	if !ok {
		return
	}
	s.servePeriod(w, r, domain.Period{Kind: domain.PeriodYear, Year: num})
}

func (s *Server) servePeriod(w http.ResponseWriter, r *http.Request, p domain.Period) {
	user := userFromContext(r)

	stats, err := s.stats.ForPeriod(r.Context(), user.ID, p)
	if errors.Is(err, domain.ErrInvalidPeriod) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := map[string]any{
		"period":        stats.Period,
		"year":          stats.Year,
		"average_steps": stats.AverageSteps,
		"dates":         stats.Dates,
	}
	switch stats.Period {
	case domain.PeriodWeek:
		resp["week"] = stats.Num
	case domain.PeriodMonth:
		resp["month"] = stats.Num
	case domain.PeriodQuarter:
		resp["quarter"] = stats.Num
	}

	writeJSON(w, http.StatusOK, resp)
}

func pathNum(w http.ResponseWriter, r *http.Request) (int, bool) {
	num, err := strconv.Atoi(r.PathValue("num"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("period number must be an integer"))
		return 0, false
	}
	return num, true
}
