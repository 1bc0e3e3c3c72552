package monitoring

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rbf-backend/internal/domain/rail"
)

var (
	aggFrom = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	aggTo   = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	inAug   = time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	inJul   = time.Date(2025, 7, 31, 23, 59, 0, 0, time.UTC)
)

func TestAggregate_EmptyInputIsAllZeros(t *testing.T) {
	m := Aggregate(nil, nil, nil, aggFrom, aggTo)
	if m != (Metrics{}) {
		t.Fatalf("got %+v, want zero metrics", m)
	}
}

func TestAggregate_SumsOnlySucceededCharges(t *testing.T) {
	charges := []rail.Charge{
		{ID: "ch_1", Status: "succeeded", CapturedCents: 5000, CreatedAt: inAug},
		{ID: "ch_2", Status: "failed", CapturedCents: 9999, CreatedAt: inAug},
		{ID: "ch_3", Status: "pending", CapturedCents: 1234, CreatedAt: inAug},
		{ID: "ch_4", Status: "succeeded", CapturedCents: 2500, RefundedCents: 500, CreatedAt: inAug},
	}
	m := Aggregate(charges, nil, nil, aggFrom, aggTo)
	if m.TotalChargesCents != 7500 {
		t.Fatalf("TotalChargesCents = %d, want 7500", m.TotalChargesCents)
	}
	if m.TotalRefundsCents != 500 {
		t.Fatalf("TotalRefundsCents = %d, want 500", m.TotalRefundsCents)
	}
}

func TestAggregate_CountsCustomersAndPaidInvoices(t *testing.T) {
	customers := []rail.Customer{
		{ID: "cus_1", CreatedAt: inAug},
		{ID: "cus_2", CreatedAt: inAug},
		{ID: "cus_3", CreatedAt: inJul}, // boundary straggler, dropped
	}
	invoices := []rail.Invoice{
		{ID: "in_1", Status: "paid", AmountPaidCents: 9900, CreatedAt: inAug},
		{ID: "in_2", Status: "open", AmountPaidCents: 0, AmountDueCents: 9900, CreatedAt: inAug},
		{ID: "in_3", Status: "paid", AmountPaidCents: 4900, CreatedAt: inAug},
	}
	m := Aggregate(nil, customers, invoices, aggFrom, aggTo)
	if m.NewCustomers != 2 {
		t.Fatalf("NewCustomers = %d, want 2", m.NewCustomers)
	}
	if m.MRRCents != 14800 {
		t.Fatalf("MRRCents = %d, want 14800", m.MRRCents)
	}
}

func TestSnapshot_ConvertsCentsToDisplayUnits(t *testing.T) {
	m := Metrics{MRRCents: 14800, TotalChargesCents: 7500, TotalRefundsCents: 500, NewCustomers: 2}
	s := m.Snapshot(42, "2025-08")
	if s.ConnectedAccountID != 42 || s.Period != "2025-08" {
		t.Fatalf("keys = %d/%s", s.ConnectedAccountID, s.Period)
	}
	if !s.MRR.Equal(decimal.NewFromFloat(148.00)) {
		t.Fatalf("MRR = %s", s.MRR)
	}
	if !s.TotalCharges.Equal(decimal.NewFromFloat(75.00)) || !s.TotalRefunds.Equal(decimal.NewFromFloat(5.00)) {
		t.Fatalf("charges/refunds = %s/%s", s.TotalCharges, s.TotalRefunds)
	}
	// churn proxy: refunded over charged
	if want := decimal.NewFromFloat(0.066667); !s.ChurnRate.Equal(want) {
		t.Fatalf("ChurnRate = %s, want %s", s.ChurnRate, want)
	}
}

func TestSnapshot_ZeroChargesMeansZeroChurn(t *testing.T) {
	s := Metrics{TotalRefundsCents: 500}.Snapshot(1, "2025-08")
	if !s.ChurnRate.IsZero() {
		t.Fatalf("ChurnRate = %s, want 0", s.ChurnRate)
	}
}
