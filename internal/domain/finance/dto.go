package finance

import (
	"strings"
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/validator"
)

type CreateFinanceRequest struct {
	WorkerID    string `json:"worker_id"`
	Description string `json:"description"`
	Amount      *int64 `json:"amount"`
}

func (r *CreateFinanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	} else if !validator.IsValidUUID(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must be a valid UUID",
		})
	}

	r.Description = strings.TrimSpace(r.Description)
	if r.Description == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	} else if validator.Length(r.Description) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 255 characters",
		})
	}

	if r.Amount == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount is required",
		})
	} else if *r.Amount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FinanceFilter struct {
	Date     *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	WorkerID *string `json:"worker_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *FinanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.WorkerID != nil && !validator.IsValidUUID(*f.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FinanceResponse struct {
	ID          string  `json:"id"`
	WorkerID    string  `json:"worker_id"`
	WorkerName  *string `json:"worker_name,omitempty"`
	Description string  `json:"description"`
	Amount      int64   `json:"amount"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(f Finance, loc *time.Location) FinanceResponse {
	return FinanceResponse{
		ID:          f.ID,
		WorkerID:    f.WorkerID,
		WorkerName:  f.WorkerName,
		Description: f.Description,
		Amount:      f.Amount,
		CreatedAt:   f.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

type ListFinanceResponse struct {
	Date        string            `json:"date"`
	TotalCount  int64             `json:"total_count"`
	TotalAmount int64             `json:"total_amount"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	TotalPages  int               `json:"total_pages"`
	Showing     string            `json:"showing"`
	Finances    []FinanceResponse `json:"finances"`
}
