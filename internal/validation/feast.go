package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FeastMonth parses "YYYY-MM" or "MM" into a half-open [from, to) month range in UTC.
// A bare month uses the year of now.
func FeastMonth(value string, now time.Time) (time.Time, time.Time, error) {
	value = strings.TrimSpace(value)

	year := now.Year()
	monthPart := value
	if y, m, ok := strings.Cut(value, "-"); ok {
		parsed, err := strconv.Atoi(y)
		if err != nil || len(y) != 4 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid feast month %q", value)
		}
		year = parsed
		monthPart = m
	}

	month, err := strconv.Atoi(monthPart)
	if err != nil || len(monthPart) > 2 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid feast month %q", value)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
