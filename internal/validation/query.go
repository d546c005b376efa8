package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/polycopy/Copy-Trading-Backend/internal/model"
)

// maxLeaderboardLimit caps how many traders one request may ask for.
const maxLeaderboardLimit = 500

var validTimeRanges = map[model.TimeRange]bool{
	model.Range1D: true,
	model.Range1W: true,
	model.Range1M: true,
	model.Range3M: true,
	model.Range1Y: true,
}

// ValidateTimeRange parses the range query parameter. An absent value
// defaults to one month.
func ValidateTimeRange(raw string) (model.TimeRange, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.Range1M, nil
	}

	tr := model.TimeRange(trimmed)
	if !validTimeRanges[tr] {
		return "", &Error{Fields: map[string]string{
			"range": fmt.Sprintf("invalid time range: %s", trimmed),
		}}
	}
	return tr, nil
}

// ValidateLimit parses the limit query parameter. An absent value yields 0,
// leaving the endpoint default to the caller.
func ValidateLimit(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(trimmed)
	if err != nil || limit <= 0 {
		return 0, &Error{Fields: map[string]string{
			"limit": "limit must be a positive integer",
		}}
	}
	if limit > maxLeaderboardLimit {
		return 0, &Error{Fields: map[string]string{
			"limit": fmt.Sprintf("limit must be at most %d", maxLeaderboardLimit),
		}}
	}
	return limit, nil
}
