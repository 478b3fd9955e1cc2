package finance

import "context"

type FinanceService interface {
	Create(ctx context.Context, req CreateFinanceRequest) (FinanceResponse, error)
	List(ctx context.Context, filter FinanceFilter) (ListFinanceResponse, error)
}
