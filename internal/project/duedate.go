package project

import (
	"fmt"
	"time"
)

// DueLabel renders a due date (YYYY-MM-DD) relative to now, at day
// granularity in local time:
//
//	before today  "Overdue (Jun 14)"
//	today         "Today"
//	tomorrow      "Tomorrow"
//	later         "Jun 20"
//
// Empty or unparsable dates yield no badge.
func DueLabel(dueDate string, now time.Time) *DueBadge {
	if dueDate == "" {
		return nil
	}
	due, err := time.ParseInLocation("2006-01-02", dueDate, now.Location())
	if err != nil {
		return nil
	}

	// Count calendar days in UTC: local midnights are not 24h apart across a
	// DST transition, so subtracting them misclassifies adjacent days.
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(dueDay.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		return &DueBadge{Label: fmt.Sprintf("Overdue (%s)", due.Format("Jan 2")), Overdue: true}
	case days == 0:
		return &DueBadge{Label: "Today", Today: true}
	case days == 1:
		return &DueBadge{Label: "Tomorrow"}
	default:
		return &DueBadge{Label: due.Format("Jan 2")}
	}
}
