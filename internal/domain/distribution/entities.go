package distribution

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound     = errors.New("distribution record not found")
	ErrAlreadyBusy  = errors.New("distribution record already processing")
	ErrNoAccount    = errors.New("investor has no active payout account")
	ErrInvalidInput = errors.New("invalid distribution input")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusExecuted   Status = "executed"
	StatusFailed     Status = "failed"
)

// Record is one investor's share of one settled payment ("repasse").
// Uniquely keyed by (payment, participation); the sum of AmountCents across
// a payment's records never exceeds the paid amount — the flooring residual
// stays with the platform.
type Record struct {
	ID              uint64         `gorm:"primaryKey;column:id" json:"-"`
	RecordID        string         `gorm:"size:32;uniqueIndex:ux_dist_records_record_id" json:"record_id"`
	PaymentID       uint64         `gorm:"column:payment_id;uniqueIndex:ux_dist_records_payment_participation,priority:1" json:"-"`
	ParticipationID uint64         `gorm:"column:participation_id;uniqueIndex:ux_dist_records_payment_participation,priority:2" json:"-"`
	InvestorID      string         `gorm:"size:32;index" json:"investor_id"`
	AmountCents     int64          `gorm:"column:amount_cents" json:"amount_cents"`
	// AmountCents split into cost-basis recovery vs. profit, fixed policy ratio.
	PrincipalCents int64          `gorm:"column:principal_cents" json:"principal_cents"`
	ReturnCents    int64          `gorm:"column:return_cents" json:"return_cents"`
	Status         Status         `gorm:"type:enum('pending','processing','executed','failed');default:'pending'" json:"status"`
	TransferID     string         `gorm:"size:64" json:"transfer_id,omitempty"`
	LastError      string         `gorm:"type:text" json:"last_error,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Record) TableName() string { return "distribution_records" }

// LogEntry is an append-only audit record for one transfer attempt. A retry
// produces a new entry, never an edit.
type LogEntry struct {
	ID          uint64     `gorm:"primaryKey;column:id" json:"-"`
	EntryID     string     `gorm:"size:32;uniqueIndex:ux_exec_log_entry_id" json:"entry_id"`
	RecordID    uint64     `gorm:"column:record_id;index" json:"-"`
	Status      Status     `gorm:"type:enum('pending','processing','executed','failed')" json:"status"`
	TransferID  string     `gorm:"size:64" json:"transfer_id,omitempty"`
	ChargeID    string     `gorm:"size:64" json:"charge_id,omitempty"`
	BatchID     string     `gorm:"size:36;index" json:"batch_id"`
	Attempt     int        `gorm:"column:attempt" json:"attempt"`
	SubmittedAt time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	ErrorMsg    string     `gorm:"type:text;column:error_msg" json:"error_msg,omitempty"`
	// Extra is a small typed escape hatch; the named columns above stay the
	// greppable surface of the audit trail.
	Extra     map[string]string `gorm:"serializer:json;type:json" json:"extra,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (LogEntry) TableName() string { return "execution_log_entries" }
