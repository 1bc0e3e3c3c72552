package metrics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot holds one connected account's aggregated figures for one calendar
// month. Derived data: upserted idempotently on (account, period) and safe
// to recompute at any time.
type Snapshot struct {
	ID                 uint64 `gorm:"primaryKey;column:id" json:"-"`
	ConnectedAccountID uint64 `gorm:"column:connected_account_id;uniqueIndex:ux_metrics_account_period,priority:1" json:"-"`
	// Period is "YYYY-MM".
	Period       string          `gorm:"size:7;uniqueIndex:ux_metrics_account_period,priority:2" json:"period"`
	MRR          decimal.Decimal `gorm:"type:decimal(18,2)" json:"mrr"`
	ChurnRate    decimal.Decimal `gorm:"type:decimal(8,6)" json:"churn_rate"`
	NewCustomers int             `gorm:"column:new_customers" json:"new_customers"`
	TotalCharges decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_charges"`
	TotalRefunds decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_refunds"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Snapshot) TableName() string { return "monthly_metrics_snapshots" }
