package monitoring

import (
	"context"
	"time"

	"rbf-backend/internal/domain/rail"
)

// Collector walks an account's transactional history on the rail one cursor
// page at a time and accumulates the full window in memory. Transient page
// errors are retried inside the rail client; whatever still fails here fails
// the whole collection.
type Collector struct {
	railc     rail.Client
	pageLimit int
}

func NewCollector(railc rail.Client, pageLimit int) *Collector {
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &Collector{railc: railc, pageLimit: pageLimit}
}

func (c *Collector) query(railAccountID, accessToken string, from, to time.Time) rail.ListQuery {
	return rail.ListQuery{
		RailAccountID: railAccountID,
		AccessToken:   accessToken,
		CreatedAfter:  from,
		CreatedBefore: to,
		Limit:         c.pageLimit,
	}
}

func (c *Collector) Charges(ctx context.Context, railAccountID, accessToken string, from, to time.Time) ([]rail.Charge, error) {
	var out []rail.Charge
	q := c.query(railAccountID, accessToken, from, to)
	for {
		page, err := c.railc.ListCharges(ctx, q)
		if err != nil {
			return nil, &CollectionError{Kind: "charges", Err: err}
		}
		out = append(out, page.Items...)
		if !page.HasMore || len(page.Items) == 0 {
			return out, nil
		}
		q.StartingAfter = page.Items[len(page.Items)-1].ID
	}
}

func (c *Collector) Customers(ctx context.Context, railAccountID, accessToken string, from, to time.Time) ([]rail.Customer, error) {
	var out []rail.Customer
	q := c.query(railAccountID, accessToken, from, to)
	for {
		page, err := c.railc.ListCustomers(ctx, q)
		if err != nil {
			return nil, &CollectionError{Kind: "customers", Err: err}
		}
		out = append(out, page.Items...)
		if !page.HasMore || len(page.Items) == 0 {
			return out, nil
		}
		q.StartingAfter = page.Items[len(page.Items)-1].ID
	}
}

func (c *Collector) Invoices(ctx context.Context, railAccountID, accessToken string, from, to time.Time) ([]rail.Invoice, error) {
	var out []rail.Invoice
	q := c.query(railAccountID, accessToken, from, to)
	for {
		page, err := c.railc.ListInvoices(ctx, q)
		if err != nil {
			return nil, &CollectionError{Kind: "invoices", Err: err}
		}
		out = append(out, page.Items...)
		if !page.HasMore || len(page.Items) == 0 {
			return out, nil
		}
		q.StartingAfter = page.Items[len(page.Items)-1].ID
	}
}
