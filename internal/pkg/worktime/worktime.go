package worktime

import (
	"fmt"
	"time"
)

// Status describes where a worker stands on a given day.
type Status string

const (
	StatusAbsent  Status = "absent"  // no check-in
	StatusWorking Status = "working" // checked in, not yet out
	StatusPresent Status = "present" // checked in and out
)

// Record is one attendance row as seen by the calculator.
// Date carries date-only precision; only its year, month and day are used.
type Record struct {
	WorkerID string
	Date     time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
}

// Complete reports whether both check-in and check-out are recorded.
func (r Record) Complete() bool {
	return r.CheckIn != nil && r.CheckOut != nil
}

type DaySummary struct {
	Date          time.Time
	WorkedMinutes int
	IsLate        bool
	LateMinutes   int
	Status        Status
}

type PeriodTotal struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	TotalMinutes int
}

// LedgerEntry is a finance transaction. At is the full creation timestamp.
type LedgerEntry struct {
	WorkerID string
	Amount   int64
	At       time.Time
}

type MonthlyRow struct {
	Date         time.Time
	Minutes      int
	FinanceTotal int64
}

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// DefaultExpectedStart is the start of the working day used for lateness.
var DefaultExpectedStart = ClockTime{Hour: 9}

// ParseClock parses "HH:MM".
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock time to the calendar day of date, in loc.
func (c ClockTime) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, loc)
}

// Calculator derives per-day summaries against a fixed expected start time.
type Calculator struct {
	expectedStart ClockTime
}

func NewCalculator(expectedStart ClockTime) *Calculator {
	return &Calculator{expectedStart: expectedStart}
}

func (c *Calculator) ExpectedStart() ClockTime {
	return c.expectedStart
}

// DaySummary computes worked time and lateness for a single record.
// An open record earns no worked minutes but is still checked for lateness.
func (c *Calculator) DaySummary(rec Record) DaySummary {
	summary := DaySummary{Date: rec.Date, Status: StatusAbsent}
	if rec.CheckIn == nil {
		return summary
	}

	checkIn := *rec.CheckIn
	summary.Status = StatusWorking

	// Anchor to the record's own day, never to "today".
	expected := c.expectedStart.On(rec.Date, checkIn.Location())
	if checkIn.After(expected) {
		summary.IsLate = true
		summary.LateMinutes = ceilMinutes(checkIn.Sub(expected))
	}

	if rec.CheckOut != nil {
		summary.Status = StatusPresent
		summary.WorkedMinutes = WorkedMinutes(checkIn, *rec.CheckOut)
	}

	return summary
}

// WorkedMinutes returns the whole minutes between in and out, truncated.
// A checkout before the check-in yields 0.
func WorkedMinutes(in, out time.Time) int {
	d := out.Sub(in)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

func ceilMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

// MinutesInRange sums worked minutes of complete records dated within
// [start, end], both inclusive. Incomplete records contribute nothing.
func MinutesInRange(records []Record, start, end time.Time) int {
	from, to := dayKey(start), dayKey(end)

	total := 0
	for _, rec := range records {
		if !rec.Complete() {
			continue
		}
		k := dayKey(rec.Date)
		if k < from || k > to {
			continue
		}
		total += WorkedMinutes(*rec.CheckIn, *rec.CheckOut)
	}
	return total
}

// WeekBounds returns the first and last day of the week containing ref.
func WeekBounds(ref time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	day := truncateDay(ref)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthBounds returns the first and last day of the month containing ref.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	y, m, _ := ref.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 1, -1)
}

func WeeklyTotal(records []Record, ref time.Time, weekStart time.Weekday) PeriodTotal {
	start, end := WeekBounds(ref, weekStart)
	return PeriodTotal{
		PeriodStart:  start,
		PeriodEnd:    end,
		TotalMinutes: MinutesInRange(records, start, end),
	}
}

func MonthlyTotal(records []Record, ref time.Time) PeriodTotal {
	start, end := MonthBounds(ref)
	return PeriodTotal{
		PeriodStart:  start,
		PeriodEnd:    end,
		TotalMinutes: MinutesInRange(records, start, end),
	}
}

// MonthlyReport returns one row per calendar day of ref's month, ascending and
// without gaps. Ledger entries are bucketed by their timestamp in ref's location.
func MonthlyReport(records []Record, ledger []LedgerEntry, ref time.Time) []MonthlyRow {
	start, end := MonthBounds(ref)

	minutes := make(map[int]int)
	for _, rec := range records {
		if !rec.Complete() {
			continue
		}
		minutes[dayKey(rec.Date)] += WorkedMinutes(*rec.CheckIn, *rec.CheckOut)
	}

	finance := make(map[int]int64)
	for _, entry := range ledger {
		finance[dayKey(entry.At.In(ref.Location()))] += entry.Amount
	}

	rows := make([]MonthlyRow, 0, end.Day())
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		k := dayKey(day)
		rows = append(rows, MonthlyRow{
			Date:         day,
			Minutes:      minutes[k],
			FinanceTotal: finance[k],
		})
	}
	return rows
}

// ByWorker groups records by worker ID, keeping their relative order.
func ByWorker(records []Record) map[string][]Record {
	grouped := make(map[string][]Record)
	for _, rec := range records {
		grouped[rec.WorkerID] = append(grouped[rec.WorkerID], rec)
	}
	return grouped
}

// SameDay reports whether a and b fall on the same calendar day, each read in
// its own location.
func SameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

// DateIn returns the calendar day of t as seen in loc, at midnight UTC; the
// same shape DATE columns are scanned into.
func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
