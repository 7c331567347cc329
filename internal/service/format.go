package service

import (
	"fmt"
	"time"

	"tattletale/internal/constants"
)

// parseAPITime parses an API datetime (MM/DD/YYYY hh:mm:ss AM|PM). The API
// sends no zone; values are UTC.
func parseAPITime(s string) (time.Time, error) {
	return time.ParseInLocation(constants.APIDateTimeLayout, s, time.UTC)
}

// fullDate renders an API datetime as DD/MM/YYYY HH:MM:SS. The raw value is
// returned unchanged when it does not parse.
func fullDate(s string) string {
	ts, err := parseAPITime(s)
	if err != nil {
		return s
	}
	return ts.Format("02/01/2006 15:04:05")
}

// agoString humanizes how long before now ts happened: the coarsest unit
// with magnitude >= 1, with the remainder in the next finer unit appended
// when it is nonzero ("3 hours and 12 minutes ago", "1 days ago").
func agoString(ts, now time.Time) string {
	seconds := now.Sub(ts).Seconds()
	if seconds < 60 {
		return "<1 minute ago"
	}

	minutes := seconds / 60
	if minutes < 60 {
		if int(minutes) == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", int(minutes))
	}

	hours := minutes / 60
	if hours < 24 {
		msg := fmt.Sprintf("%d hours", int(hours))
		if rem := int(minutes) % 60; rem > 0 {
			msg += fmt.Sprintf(" and %d minutes", rem)
		}
		return msg + " ago"
	}

	days := hours / 24
	if days < 30 {
		msg := fmt.Sprintf("%d days", int(days))
		if rem := int(hours) % 24; rem > 0 {
			msg += fmt.Sprintf(" and %d hours", rem)
		}
		return msg + " ago"
	}

	months := days / 30
	if months < 12 {
		msg := fmt.Sprintf("%d months", int(months))
		if rem := int(days) % 30; rem > 0 {
			msg += fmt.Sprintf(" and %d days", rem)
		}
		return msg + " ago"
	}

	years := months / 12
	msg := fmt.Sprintf("%d years", int(years))
	if rem := int(months) % 12; rem > 0 {
		msg += fmt.Sprintf(" and %d months", rem)
	}
	return msg + " ago"
}

// formatShare renders a count with its percentage of total, e.g. "30 (60%)".
func formatShare(count, total int) string {
	if total == 0 {
		return fmt.Sprintf("%d (0%%)", count)
	}
	return fmt.Sprintf("%d (%.0f%%)", count, float64(count)/float64(total)*100)
}
