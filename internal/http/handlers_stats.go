package http

import (
	"net/http"
	"strings"

	"spesa/internal/core"
	"spesa/internal/log"
)

// Italian aliases accepted at the API boundary alongside the canonical
// period names.
var periodAliases = map[string]core.Period{
	"giorno":    core.PeriodDay,
	"settimana": core.PeriodWeek,
	"mese":      core.PeriodMonth,
	"anno":      core.PeriodYear,
}

func parsePeriod(raw string) (core.Period, bool) {
	if p, ok := core.ParsePeriod(raw); ok {
		return p, true
	}
	p, ok := periodAliases[strings.ToLower(strings.TrimSpace(raw))]
	return p, ok
}

// parseRefDate resolves the optional ?date= parameter, defaulting to today.
func parseRefDate(raw string) (core.Day, error) {
	if strings.TrimSpace(raw) == "" {
		return core.Today(), nil
	}
	return core.ParseDay(raw)
}

// handleStats computes aggregate statistics over the expenses matching
// ?period= and ?date=. An absent or unrecognized period (including the
// selector's "none") means no filter: stats over the full ledger. Responses
// are cached per period/date key until the expenses slot changes.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	period, _ := parsePeriod(r.URL.Query().Get("period"))

	ref, err := parseRefDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	key := "all"
	if period != "" {
		key = string(period) + ":" + ref.Key()
	}
	if stats, ok := s.statsCache.Get(key); ok {
		statsCacheHits.Inc()
		writeJSON(w, http.StatusOK, stats)
		return
	}
	statsCacheMisses.Inc()

	expenses := core.FilterByPeriod(s.tracker.Ledger.Expenses(), period, ref)
	stats := core.ComputeStats(expenses)
	s.statsCache.Set(key, stats)

	s.logger.Debug("Computed statistics",
		log.FieldPeriod, string(period),
		"expenses", len(expenses))
	writeJSON(w, http.StatusOK, stats)
}
