package finance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/alefshop/attendance-backend/internal/domain/finance"
	"github.com/alefshop/attendance-backend/internal/domain/worker"
	"github.com/alefshop/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tehran = time.FixedZone("IRST", 3*60*60+30*60)

type fakeWorkerRepo struct {
	worker.WorkerRepository
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id, userID string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok || w.UserID != userID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

type fakeFinanceRepo struct {
	finance.FinanceRepository
	rows    []finance.Finance
	workers *fakeWorkerRepo
	clock   time.Time
}

func (f *fakeFinanceRepo) Create(_ context.Context, fin finance.Finance) (finance.Finance, error) {
	fin.ID = uuid.NewString()
	fin.CreatedAt = f.clock
	fin.UpdatedAt = f.clock
	f.rows = append(f.rows, fin)
	return fin, nil
}

func (f *fakeFinanceRepo) List(_ context.Context, userID string, filter finance.FinanceFilter, from, to time.Time) ([]finance.Finance, int64, int64, error) {
	var matched []finance.Finance
	var total int64
	for _, r := range f.rows {
		if f.workers.workers[r.WorkerID].UserID != userID {
			continue
		}
		if filter.WorkerID != nil && r.WorkerID != *filter.WorkerID {
			continue
		}
		if r.CreatedAt.Before(from) || !r.CreatedAt.Before(to) {
			continue
		}
		matched = append(matched, r)
		total += r.Amount
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	start := (filter.Page - 1) * filter.Limit
	if start > len(matched) {
		start = len(matched)
	}
	end := min(start+filter.Limit, len(matched))
	return matched[start:end], int64(len(matched)), total, nil
}

func userCtx(t *testing.T, userID string) context.Context {
	t.Helper()
	tok := jwxjwt.New()
	require.NoError(t, tok.Set(jwt.ClaimUserID, userID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func setup(t *testing.T) (*FinanceServiceImpl, *fakeFinanceRepo, string) {
	t.Helper()
	workerID := uuid.NewString()
	workers := &fakeWorkerRepo{workers: map[string]worker.Worker{
		workerID: {ID: workerID, UserID: "owner-1", Name: "Ali"},
	}}
	repo := &fakeFinanceRepo{workers: workers}
	svc := NewFinanceService(repo, workers, tehran).(*FinanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 6, 11, 10, 0, 0, 0, tehran) }
	return svc, repo, workerID
}

func amount(v int64) *int64 { return &v }

func TestFinanceService_Create(t *testing.T) {
	svc, repo, workerID := setup(t)
	repo.clock = time.Date(2025, 6, 11, 6, 30, 0, 0, time.UTC)

	resp, err := svc.Create(userCtx(t, "owner-1"), finance.CreateFinanceRequest{
		WorkerID: workerID, Description: "advance", Amount: amount(250000),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(250000), resp.Amount)
	assert.Equal(t, "Ali", *resp.WorkerName)
	assert.Equal(t, "2025-06-11T10:00:00+03:30", resp.CreatedAt)

	_, err = svc.Create(userCtx(t, "owner-2"), finance.CreateFinanceRequest{
		WorkerID: workerID, Description: "advance", Amount: amount(1),
	})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
	assert.Len(t, repo.rows, 1)
}

func TestFinanceService_ListDefaultsToLocalToday(t *testing.T) {
	svc, repo, workerID := setup(t)
	ctx := userCtx(t, "owner-1")

	// 2025-06-10 21:00 UTC is already 00:30 on the 11th in Tehran.
	for _, at := range []time.Time{
		time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 10, 21, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC),
	} {
		repo.clock = at
		_, err := svc.Create(ctx, finance.CreateFinanceRequest{WorkerID: workerID, Description: "pay", Amount: amount(100)})
		require.NoError(t, err)
	}

	filter := finance.FinanceFilter{}
	require.NoError(t, filter.Validate())
	resp, err := svc.List(ctx, filter)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-11", resp.Date)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, int64(200), resp.TotalAmount)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Equal(t, "Showing 1-2 of 2", resp.Showing)
	require.Len(t, resp.Finances, 2)
	assert.Equal(t, "2025-06-11T15:30:00+03:30", resp.Finances[0].CreatedAt, "newest first")

	day := "2025-06-10"
	resp, err = svc.List(ctx, finance.FinanceFilter{Date: &day, Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
}

func TestFinanceService_ListPagination(t *testing.T) {
	svc, repo, workerID := setup(t)
	ctx := userCtx(t, "owner-1")

	base := time.Date(2025, 6, 11, 8, 0, 0, 0, tehran)
	for i := 0; i < 5; i++ {
		repo.clock = base.Add(time.Duration(i) * time.Minute)
		_, err := svc.Create(ctx, finance.CreateFinanceRequest{WorkerID: workerID, Description: "pay", Amount: amount(10)})
		require.NoError(t, err)
	}

	resp, err := svc.List(ctx, finance.FinanceFilter{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, "Showing 5-5 of 5", resp.Showing)
	assert.Equal(t, int64(50), resp.TotalAmount, "total covers every page")

	resp, err = svc.List(ctx, finance.FinanceFilter{Page: 4, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.Finances)
	assert.Equal(t, "Showing 0 of 5", resp.Showing)
}
