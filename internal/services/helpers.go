package services

import (
	"errors"
	"strings"
	"time"
)

// ErrDateFormat is returned when a date cannot be parsed in any accepted layout.
var ErrDateFormat = errors.New("invalid date format, please use YYYY-MM-DD or DD/MM/YYYY")

// acceptedDateLayouts lists the input layouts tolerated at the API boundary.
// Scheduling sources send either ISO dates or the Brazilian day/month/year form.
var acceptedDateLayouts = []string{"2006-01-02", "02/01/2006"}

// parseFlexibleDate parses dateStr in any accepted layout and returns the
// canonical ISO (YYYY-MM-DD) representation.
func parseFlexibleDate(dateStr string) (string, error) {
	trimmed := strings.TrimSpace(dateStr)
	if trimmed == "" {
		return "", ErrDateFormat
	}
	for _, layout := range acceptedDateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02"), nil
		}
	}
	return "", ErrDateFormat
}

// clampPagination bounds page and pageSize to sane positive values before
// they reach a repository query.
func clampPagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// derefString returns the value of a possibly-nil string pointer.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fallback returns value unless it is empty, in which case previous is kept.
func fallback(value string, previous *string) *string {
	if value != "" {
		return &value
	}
	return previous
}
