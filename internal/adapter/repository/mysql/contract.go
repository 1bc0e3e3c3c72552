package mysql

import (
	"context"

	"gorm.io/gorm"

	contractDomain "rbf-backend/internal/domain/contract"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository { return &ContractRepository{db: db} }

func (r *ContractRepository) GetByContractID(ctx context.Context, contractID string) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("contract_id = ?", contractID).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) ListParticipations(ctx context.Context, contractNumericID uint64) ([]contractDomain.Participation, error) {
	var out []contractDomain.Participation
	res := r.db.WithContext(ctx).
		Where("contract_id = ?", contractNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ContractRepository) AddPaidToDate(ctx context.Context, contractNumericID uint64, cents int64) error {
	return r.db.WithContext(ctx).
		Model(&contractDomain.Contract{}).
		Where("id = ?", contractNumericID).
		UpdateColumn("paid_to_date_cents", gorm.Expr("paid_to_date_cents + ?", cents)).Error
}
