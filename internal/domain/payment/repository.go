package payment

import "context"

type Repository interface {
	GetByPaymentID(ctx context.Context, paymentID string) (*Payment, error)
	Save(ctx context.Context, p *Payment) error
	// ClaimPaidToDateBump flips paid_to_date_applied with a guarded update
	// and reports whether this call won the flip. At most one caller ever
	// wins per payment, so the contract counter is bumped exactly once no
	// matter how often a distribution is re-invoked.
	ClaimPaidToDateBump(ctx context.Context, paymentNumericID uint64) (bool, error)
}
