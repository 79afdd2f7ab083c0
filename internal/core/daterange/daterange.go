package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Period names accepted by Parse.
const (
	Weekly    = "weekly"
	Monthly   = "monthly"
	Quarterly = "quarterly"
	Yearly    = "yearly"
)

var (
	// ErrUnknownPeriod is returned for a periodType outside the supported set.
	ErrUnknownPeriod = errors.New("unknown period type")
	// ErrInvalidDate is returned when fromDate or toDate cannot be parsed.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvertedRange is returned when fromDate is after toDate.
	ErrInvertedRange = errors.New("fromDate is after toDate")
)

const dayLayout = "2006-01-02"

// Range is an inclusive createdAt window. A zero bound is unbounded.
type Range struct {
	Start time.Time
	End   time.Time
}

// IsZero reports whether the range filters nothing.
func (r Range) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Parse resolves the fromDate/toDate/periodType query trio.
// Explicit dates win over periodType. A YYYY-MM-DD toDate covers the whole day.
func Parse(fromDate, toDate, periodType string, now time.Time) (Range, error) {
	fromDate = strings.TrimSpace(fromDate)
	toDate = strings.TrimSpace(toDate)

	if fromDate != "" || toDate != "" {
		var r Range
		var err error

		if fromDate != "" {
			if r.Start, _, err = parseDate(fromDate); err != nil {
				return Range{}, fmt.Errorf("%w: fromDate %q", ErrInvalidDate, fromDate)
			}
		}

		if toDate != "" {
			end, dayOnly, err := parseDate(toDate)
			if err != nil {
				return Range{}, fmt.Errorf("%w: toDate %q", ErrInvalidDate, toDate)
			}
			if dayOnly {
				end = end.AddDate(0, 0, 1).Add(-time.Millisecond)
			}
			r.End = end
		} else {
			r.End = now
		}

		if !r.Start.IsZero() && r.Start.After(r.End) {
			return Range{}, ErrInvertedRange
		}
		return r, nil
	}

	switch strings.ToLower(strings.TrimSpace(periodType)) {
	case "":
		return Range{}, nil
	case Weekly:
		return Range{Start: now.AddDate(0, 0, -7), End: now}, nil
	case Monthly:
		return Range{Start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), End: now}, nil
	case Quarterly:
		first := time.Month((int(now.Month())-1)/3*3 + 1)
		return Range{Start: time.Date(now.Year(), first, 1, 0, 0, 0, 0, now.Location()), End: now}, nil
	case Yearly:
		return Range{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: now}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, periodType)
	}
}

// Key names the requested window independently of the instant it is resolved
// at, so relative and open-ended windows can be cached. Explicit dates win over
// periodType, as in Parse. No filter yields "".
func Key(fromDate, toDate, periodType string) string {
	fromDate = strings.TrimSpace(fromDate)
	toDate = strings.TrimSpace(toDate)
	if fromDate != "" || toDate != "" {
		return "from=" + fromDate + ";to=" + toDate
	}
	if p := strings.ToLower(strings.TrimSpace(periodType)); p != "" {
		return "period=" + p
	}
	return ""
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dayLayout, s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, false, err
}
