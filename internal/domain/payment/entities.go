package payment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("payment not found")
	ErrNotSettled = errors.New("payment is not settled")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusLate      Status = "late"
)

// Payment is a single collection event tied to a contract. The transition to
// paid happens exactly once and is the trigger for distribution.
type Payment struct {
	ID                  uint64         `gorm:"primaryKey;column:id" json:"-"`
	PaymentID           string         `gorm:"size:32;uniqueIndex:ux_payments_payment_id_active" json:"payment_id"`
	ContractID          uint64         `gorm:"column:contract_id;index" json:"-"`
	ExpectedAmountCents int64          `gorm:"column:expected_amount_cents" json:"expected_amount_cents"`
	PaidAmountCents     *int64         `gorm:"column:paid_amount_cents" json:"paid_amount_cents"`
	DueDate             time.Time      `gorm:"type:date" json:"due_date"`
	PaidDate            *time.Time     `gorm:"type:date" json:"paid_date"`
	Status              Status         `gorm:"type:enum('scheduled','pending','paid','late');default:'scheduled'" json:"status"`
	// PaidToDateApplied flips exactly once, when this payment's amount is
	// added to the contract's repayment counter.
	PaidToDateApplied bool `gorm:"column:paid_to_date_applied;default:false" json:"-"`
	CreatedAt           time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "payments" }
