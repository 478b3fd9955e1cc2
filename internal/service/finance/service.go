package finance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
)

type FinanceServiceImpl struct {
	finance.FinanceRepository
	worker.WorkerRepository

	loc *time.Location
	now func() time.Time
}

func NewFinanceService(financeRepository finance.FinanceRepository, workerRepository worker.WorkerRepository, loc *time.Location) finance.FinanceService {
	return &FinanceServiceImpl{
		FinanceRepository: financeRepository,
		WorkerRepository:  workerRepository,
		loc:               loc,
		now:               time.Now,
	}
}

// Create implements finance.FinanceService.
func (s *FinanceServiceImpl) Create(ctx context.Context, req finance.CreateFinanceRequest) (finance.FinanceResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return finance.FinanceResponse{}, err
	}

	w, err := s.WorkerRepository.GetByID(ctx, req.WorkerID, userID)
	if err != nil {
		return finance.FinanceResponse{}, err
	}

	created, err := s.FinanceRepository.Create(ctx, finance.Finance{
		WorkerID:    w.ID,
		Description: req.Description,
		Amount:      *req.Amount,
	})
	if err != nil {
		return finance.FinanceResponse{}, err
	}
	created.WorkerName = &w.Name

	slog.Info("finance recorded", "finance_id", created.ID, "worker_id", w.ID, "amount", created.Amount)
	return finance.ToResponse(created, s.loc), nil
}

// List implements finance.FinanceService. Transactions are bucketed by the
// calendar day of their creation in the attendance timezone.
func (s *FinanceServiceImpl) List(ctx context.Context, filter finance.FinanceFilter) (finance.ListFinanceResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return finance.ListFinanceResponse{}, err
	}

	day, err := s.resolveDay(filter.Date)
	if err != nil {
		return finance.ListFinanceResponse{}, err
	}
	from, to := day, day.AddDate(0, 0, 1)

	rows, count, total, err := s.FinanceRepository.List(ctx, userID, filter, from, to)
	if err != nil {
		return finance.ListFinanceResponse{}, err
	}

	resp := finance.ListFinanceResponse{
		Date:        day.Format(time.DateOnly),
		TotalCount:  count,
		TotalAmount: total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages(count, filter.Limit),
		Showing:     showing(count, filter.Page, filter.Limit, len(rows)),
		Finances:    make([]finance.FinanceResponse, 0, len(rows)),
	}
	for _, f := range rows {
		resp.Finances = append(resp.Finances, finance.ToResponse(f, s.loc))
	}
	return resp, nil
}

// resolveDay returns local midnight of the requested day, or of today.
func (s *FinanceServiceImpl) resolveDay(date *string) (time.Time, error) {
	if date == nil || *date == "" {
		y, m, d := s.now().In(s.loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, *date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", *date, err)
	}
	return day, nil
}

func totalPages(count int64, limit int) int {
	if limit <= 0 || count == 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

func showing(count int64, page, limit, n int) string {
	if n == 0 {
		return fmt.Sprintf("Showing 0 of %d", count)
	}
	first := (page-1)*limit + 1
	return fmt.Sprintf("Showing %d-%d of %d", first, first+n-1, count)
}
