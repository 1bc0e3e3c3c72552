package monitoring

import (
	"time"

	"github.com/shopspring/decimal"

	"rbf-backend/internal/domain/metrics"
	"rbf-backend/internal/domain/rail"
)

// Metrics is one account's monthly reduction, kept in integer minor units so
// the sums never touch floating point. Conversion to display units happens
// only at the snapshot boundary.
type Metrics struct {
	MRRCents          int64
	TotalChargesCents int64
	TotalRefundsCents int64
	NewCustomers      int
}

func inWindow(ts, from, to time.Time) bool {
	return !ts.Before(from) && ts.Before(to)
}

// Aggregate reduces collected rail records into one month's figures. Pure:
// zero-valued metrics on empty input, never an error. The collector already
// bounds the inputs to the window; the filter here only drops stragglers a
// lenient rail may return on the boundary.
func Aggregate(charges []rail.Charge, customers []rail.Customer, invoices []rail.Invoice, from, to time.Time) Metrics {
	var m Metrics
	for _, ch := range charges {
		if !inWindow(ch.CreatedAt, from, to) {
			continue
		}
		if ch.Status == "succeeded" {
			m.TotalChargesCents += ch.CapturedCents
		}
		m.TotalRefundsCents += ch.RefundedCents
	}
	for _, cu := range customers {
		if inWindow(cu.CreatedAt, from, to) {
			m.NewCustomers++
		}
	}
	for _, inv := range invoices {
		if inWindow(inv.CreatedAt, from, to) && inv.Status == "paid" {
			m.MRRCents += inv.AmountPaidCents
		}
	}
	return m
}

// Snapshot converts the cent-level figures into the persisted decimal form,
// keyed by (account, period).
func (m Metrics) Snapshot(accountNumericID uint64, period string) *metrics.Snapshot {
	churn := decimal.Zero
	if m.TotalChargesCents > 0 {
		churn = decimal.New(m.TotalRefundsCents, 0).
			Div(decimal.New(m.TotalChargesCents, 0)).
			Round(6)
	}
	return &metrics.Snapshot{
		ConnectedAccountID: accountNumericID,
		Period:             period,
		MRR:                decimal.New(m.MRRCents, -2),
		ChurnRate:          churn,
		NewCustomers:       m.NewCustomers,
		TotalCharges:       decimal.New(m.TotalChargesCents, -2),
		TotalRefunds:       decimal.New(m.TotalRefundsCents, -2),
	}
}
