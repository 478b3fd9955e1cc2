package worktime

import "fmt"

// FormatDaily renders a single day's minutes as zero-padded "HH:MM".
func FormatDaily(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatPeriod renders weekly/monthly minutes as "H:MM"; hours are not padded.
func FormatPeriod(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// WorkHours is the daily label for a summary: "-" until the day is complete.
func WorkHours(s DaySummary) string {
	if s.Status != StatusPresent {
		return "-"
	}
	return FormatDaily(s.WorkedMinutes)
}
