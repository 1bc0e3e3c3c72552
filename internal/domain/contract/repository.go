package contract

import "context"

type Repository interface {
	GetByContractID(ctx context.Context, contractID string) (*Contract, error)
	GetByID(ctx context.Context, id uint64) (*Contract, error)
	// ListParticipations returns a contract's participations in creation order.
	ListParticipations(ctx context.Context, contractNumericID uint64) ([]Participation, error)
	// AddPaidToDate bumps the aggregate repayment counter once per settled
	// payment's distribution.
	AddPaidToDate(ctx context.Context, contractNumericID uint64, cents int64) error
}
