package contract

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("contract not found")

// Contract is a revenue-based financing agreement between one borrower and
// its funding investors. Immutable once active except for the paid-to-date
// counter.
type Contract struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	ContractID     string `gorm:"size:32;uniqueIndex:ux_contracts_contract_id_active" json:"contract_id"`
	BorrowerID     string `gorm:"size:32;index:idx_contracts_borrower" json:"borrower_id"`
	PrincipalCents int64  `gorm:"column:principal_cents" json:"principal_cents"`
	// PayoutMultiple caps total repayment at principal * multiple.
	PayoutMultiple decimal.Decimal `gorm:"type:decimal(6,4)" json:"payout_multiple"`
	// RevenueShareRate is the fraction of monthly revenue collected.
	RevenueShareRate decimal.Decimal `gorm:"type:decimal(6,4)" json:"revenue_share_rate"`
	Currency         string          `gorm:"size:3;default:'BRL'" json:"currency"`
	PaidToDateCents  int64           `gorm:"column:paid_to_date_cents;default:0" json:"paid_to_date_cents"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Contract) TableName() string { return "contracts" }

// Participation is one investor's fractional claim on a contract's
// repayments. Read-only after investment confirmation. PercentageShare is
// 0-100; the sum across a contract's participations may be below 100 when
// the round is partially funded, never above.
type Participation struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	ParticipationID string          `gorm:"size:32;uniqueIndex:ux_participations_pid" json:"participation_id"`
	ContractID      uint64          `gorm:"column:contract_id;index;uniqueIndex:ux_participations_contract_investor,priority:1" json:"-"`
	InvestorID      string          `gorm:"size:32;uniqueIndex:ux_participations_contract_investor,priority:2" json:"investor_id"`
	PercentageShare decimal.Decimal `gorm:"type:decimal(7,4)" json:"percentage_share"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Participation) TableName() string { return "participations" }
