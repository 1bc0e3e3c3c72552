package uow

import (
	"context"

	"rbf-backend/internal/domain/account"
	"rbf-backend/internal/domain/contract"
	"rbf-backend/internal/domain/distribution"
	"rbf-backend/internal/domain/metrics"
	"rbf-backend/internal/domain/payment"
)

type Repos struct {
	Contracts     contract.Repository
	Payments      payment.Repository
	Distributions distribution.Repository
	Accounts      account.Repository
	Metrics       metrics.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
