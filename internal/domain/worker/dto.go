package worker

import (
	"strings"
	"time"

	"github.com/alefshop/attendance-backend/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name string  `json:"name"`
	Code *string `json:"code,omitempty"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if validator.Length(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	errs = append(errs, validateCode(r.Code)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	ID   string  `json:"-"`
	Name *string `json:"name,omitempty"`
	Code *string `json:"code,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
		if name == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		} else if validator.Length(name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 255 characters",
			})
		}
	}

	errs = append(errs, validateCode(r.Code)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateCode(code *string) validator.ValidationErrors {
	if code == nil {
		return nil
	}
	if validator.Length(*code) > 50 {
		return validator.ValidationErrors{{Field: "code", Message: "code must not exceed 50 characters"}}
	}
	return nil
}

type WorkerResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      *string `json:"code,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}
