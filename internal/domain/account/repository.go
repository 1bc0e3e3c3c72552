package account

import "context"

type Repository interface {
	// GetActivePayoutAccount resolves an investor's active read-write account.
	GetActivePayoutAccount(ctx context.Context, investorID string) (*ConnectedAccount, error)
	// ListActiveMonitored returns all active read-only accounts, in id order.
	ListActiveMonitored(ctx context.Context) ([]ConnectedAccount, error)
	Deactivate(ctx context.Context, accountNumericID uint64) error
	TouchLastSynced(ctx context.Context, accountNumericID uint64) error
}
