package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM / JSON column types) ---

type contractSQLite struct {
	ID               uint64          `gorm:"primaryKey;column:id"`
	ContractID       string          `gorm:"size:32;column:contract_id"`
	BorrowerID       string          `gorm:"size:32;column:borrower_id"`
	PrincipalCents   int64           `gorm:"column:principal_cents"`
	PayoutMultiple   decimal.Decimal `gorm:"column:payout_multiple"`
	RevenueShareRate decimal.Decimal `gorm:"column:revenue_share_rate"`
	Currency         string          `gorm:"column:currency"`
	PaidToDateCents  int64           `gorm:"column:paid_to_date_cents"`
	CreatedAt        time.Time       `gorm:"column:created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"column:deleted_at"`
}

func (contractSQLite) TableName() string { return "contracts" }

type participationSQLite struct {
	ID              uint64          `gorm:"primaryKey;column:id"`
	ParticipationID string          `gorm:"size:32;column:participation_id"`
	ContractID      uint64          `gorm:"column:contract_id"`
	InvestorID      string          `gorm:"size:32;column:investor_id"`
	PercentageShare decimal.Decimal `gorm:"column:percentage_share"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (participationSQLite) TableName() string { return "participations" }

type paymentSQLite struct {
	ID                  uint64         `gorm:"primaryKey;column:id"`
	PaymentID           string         `gorm:"size:32;column:payment_id"`
	ContractID          uint64         `gorm:"column:contract_id"`
	ExpectedAmountCents int64          `gorm:"column:expected_amount_cents"`
	PaidAmountCents     *int64         `gorm:"column:paid_amount_cents"`
	DueDate             time.Time      `gorm:"column:due_date"`
	PaidDate            *time.Time     `gorm:"column:paid_date"`
	Status              string         `gorm:"type:text;column:status"` // ← no enum
	PaidToDateApplied   bool           `gorm:"column:paid_to_date_applied"`
	CreatedAt           time.Time      `gorm:"column:created_at"`
	UpdatedAt           time.Time      `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (paymentSQLite) TableName() string { return "payments" }

type distRecordSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	RecordID        string         `gorm:"size:32;column:record_id"`
	PaymentID       uint64         `gorm:"column:payment_id;uniqueIndex:ux_dist_pp,priority:1"`
	ParticipationID uint64         `gorm:"column:participation_id;uniqueIndex:ux_dist_pp,priority:2"`
	InvestorID      string         `gorm:"size:32;column:investor_id"`
	AmountCents     int64          `gorm:"column:amount_cents"`
	PrincipalCents  int64          `gorm:"column:principal_cents"`
	ReturnCents     int64          `gorm:"column:return_cents"`
	Status          string         `gorm:"type:text;column:status"` // ← no enum
	TransferID      string         `gorm:"column:transfer_id"`
	LastError       string         `gorm:"column:last_error"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (distRecordSQLite) TableName() string { return "distribution_records" }

type logEntrySQLite struct {
	ID          uint64     `gorm:"primaryKey;column:id"`
	EntryID     string     `gorm:"size:32;column:entry_id"`
	RecordID    uint64     `gorm:"column:record_id"`
	Status      string     `gorm:"type:text;column:status"`
	TransferID  string     `gorm:"column:transfer_id"`
	ChargeID    string     `gorm:"column:charge_id"`
	BatchID     string     `gorm:"column:batch_id"`
	Attempt     int        `gorm:"column:attempt"`
	SubmittedAt time.Time  `gorm:"column:submitted_at"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at"`
	ErrorMsg    string     `gorm:"column:error_msg"`
	Extra       string     `gorm:"type:text;column:extra"` // ← serialized json as text
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (logEntrySQLite) TableName() string { return "execution_log_entries" }

type accountSQLite struct {
	ID              uint64         `gorm:"primaryKey;column:id"`
	AccountID       string         `gorm:"size:32;column:account_id"`
	OwnerID         string         `gorm:"size:32;column:owner_id"`
	OwnerKind       string         `gorm:"type:text;column:owner_kind"`
	RailAccountID   string         `gorm:"column:rail_account_id"`
	Scope           string         `gorm:"type:text;column:scope"`
	AccessTokenEnc  string         `gorm:"column:access_token_enc"`
	RefreshTokenEnc string         `gorm:"column:refresh_token_enc"`
	IsActive        bool           `gorm:"column:is_active"`
	LastSyncedAt    *time.Time     `gorm:"column:last_synced_at"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (accountSQLite) TableName() string { return "connected_accounts" }

type snapshotSQLite struct {
	ID                 uint64          `gorm:"primaryKey;column:id"`
	ConnectedAccountID uint64          `gorm:"column:connected_account_id;uniqueIndex:ux_metrics_ap,priority:1"`
	Period             string          `gorm:"size:7;column:period;uniqueIndex:ux_metrics_ap,priority:2"`
	MRR                decimal.Decimal `gorm:"column:mrr"`
	ChurnRate          decimal.Decimal `gorm:"column:churn_rate"`
	NewCustomers       int             `gorm:"column:new_customers"`
	TotalCharges       decimal.Decimal `gorm:"column:total_charges"`
	TotalRefunds       decimal.Decimal `gorm:"column:total_refunds"`
	CreatedAt          time.Time       `gorm:"column:created_at"`
	UpdatedAt          time.Time       `gorm:"column:updated_at"`
}

func (snapshotSQLite) TableName() string { return "monthly_metrics_snapshots" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the
// sqlite-safe shadow schemas, never the domain models.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&contractSQLite{}, &participationSQLite{}, &paymentSQLite{},
		&distRecordSQLite{}, &logEntrySQLite{}, &accountSQLite{}, &snapshotSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
