package finance

import (
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/worktime"
)

// Finance is a cash transaction paid to a worker. Amount is in the smallest
// currency unit.
type Finance struct {
	ID          string
	WorkerID    string
	Description string
	Amount      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Join
	WorkerName *string
}

func (f Finance) LedgerEntry() worktime.LedgerEntry {
	return worktime.LedgerEntry{WorkerID: f.WorkerID, Amount: f.Amount, At: f.CreatedAt}
}

func LedgerEntries(rows []Finance) []worktime.LedgerEntry {
	out := make([]worktime.LedgerEntry, len(rows))
	for i, f := range rows {
		out[i] = f.LedgerEntry()
	}
	return out
}
