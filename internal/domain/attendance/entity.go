package attendance

import (
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
)

// Attendance is the single record a worker has for a calendar day.
type Attendance struct {
	ID        string
	WorkerID  string
	Date      time.Time
	CheckIn   *time.Time
	CheckOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	WorkerName *string
}

func (a Attendance) Record() worktime.Record {
	return worktime.Record{
		WorkerID: a.WorkerID,
		Date:     a.Date,
		CheckIn:  a.CheckIn,
		CheckOut: a.CheckOut,
	}
}

// Records converts rows for the aggregator.
func Records(rows []Attendance) []worktime.Record {
	out := make([]worktime.Record, len(rows))
	for i, a := range rows {
		out[i] = a.Record()
	}
	return out
}

// In returns a copy with its timestamps moved to loc. Lateness is measured on
// the wall clock of the check-in's location, so records read back from the
// database are moved to the attendance timezone before summarizing.
func (a Attendance) In(loc *time.Location) Attendance {
	if a.CheckIn != nil {
		in := a.CheckIn.In(loc)
		a.CheckIn = &in
	}
	if a.CheckOut != nil {
		out := a.CheckOut.In(loc)
		a.CheckOut = &out
	}
	return a
}
