package worker

import "time"

type Worker struct {
	ID        string
	UserID    string
	Name      string
	Code      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
