package mysql

import (
	"context"

	"gorm.io/gorm"

	"rbf-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			Contracts:     &ContractRepository{db: tx},
			Payments:      &PaymentRepository{db: tx},
			Distributions: &DistributionRepository{db: tx},
			Accounts:      &AccountRepository{db: tx},
			Metrics:       &MetricsRepository{db: tx},
		}
		return fn(r)
	})
}
