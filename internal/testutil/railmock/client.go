package railmock

import (
	"context"
	"errors"

	"rbf-backend/internal/domain/rail"
)

var _ rail.Client = (*Client)(nil)

var errUnimplemented = errors.New("railmock: method not implemented")

// Client is a function-backed mock that satisfies rail.Client.
// Fill in the function fields you need in a test; unfilled ones error.
type Client struct {
	CreateTransferFn  func(ctx context.Context, req rail.TransferRequest) (*rail.Transfer, error)
	ListChargesFn     func(ctx context.Context, q rail.ListQuery) (*rail.ChargePage, error)
	ListCustomersFn   func(ctx context.Context, q rail.ListQuery) (*rail.CustomerPage, error)
	ListInvoicesFn    func(ctx context.Context, q rail.ListQuery) (*rail.InvoicePage, error)
	RetrieveAccountFn func(ctx context.Context, railAccountID string) (*rail.Account, error)

	// TransferCalls counts CreateTransfer invocations, for idempotency
	// assertions.
	TransferCalls int
}

func (m *Client) CreateTransfer(ctx context.Context, req rail.TransferRequest) (*rail.Transfer, error) {
	m.TransferCalls++
	if m.CreateTransferFn != nil {
		return m.CreateTransferFn(ctx, req)
	}
	return nil, errUnimplemented
}

func (m *Client) ListCharges(ctx context.Context, q rail.ListQuery) (*rail.ChargePage, error) {
	if m.ListChargesFn != nil {
		return m.ListChargesFn(ctx, q)
	}
	return &rail.ChargePage{}, nil
}

func (m *Client) ListCustomers(ctx context.Context, q rail.ListQuery) (*rail.CustomerPage, error) {
	if m.ListCustomersFn != nil {
		return m.ListCustomersFn(ctx, q)
	}
	return &rail.CustomerPage{}, nil
}

func (m *Client) ListInvoices(ctx context.Context, q rail.ListQuery) (*rail.InvoicePage, error) {
	if m.ListInvoicesFn != nil {
		return m.ListInvoicesFn(ctx, q)
	}
	return &rail.InvoicePage{}, nil
}

func (m *Client) RetrieveAccount(ctx context.Context, railAccountID string) (*rail.Account, error) {
	if m.RetrieveAccountFn != nil {
		return m.RetrieveAccountFn(ctx, railAccountID)
	}
	return nil, errUnimplemented
}
