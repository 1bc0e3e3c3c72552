package rail

import "context"

// Client is the boundary to the external payment rail. Implementations own
// the retry-on-transient-error policy; persistence is always the caller's
// responsibility. Injected everywhere so tests can substitute a fake without
// touching process-wide state.
type Client interface {
	CreateTransfer(ctx context.Context, req TransferRequest) (*Transfer, error)
	ListCharges(ctx context.Context, q ListQuery) (*ChargePage, error)
	ListCustomers(ctx context.Context, q ListQuery) (*CustomerPage, error)
	ListInvoices(ctx context.Context, q ListQuery) (*InvoicePage, error)
	RetrieveAccount(ctx context.Context, railAccountID string) (*Account, error)
}
