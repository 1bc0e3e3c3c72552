package account

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("connected account not found")

type Scope string

const (
	ScopeReadOnly  Scope = "read_only"
	ScopeReadWrite Scope = "read_write"
)

type OwnerKind string

const (
	OwnerBorrower OwnerKind = "borrower"
	OwnerInvestor OwnerKind = "investor"
)

// ConnectedAccount links a borrower or investor to a sub-account on the
// external payment rail. Tokens are stored AES-GCM encrypted; accounts are
// deactivated, never deleted, when the rail rejects their credentials.
type ConnectedAccount struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	AccountID     string    `gorm:"size:32;uniqueIndex:ux_connected_accounts_account_id" json:"account_id"`
	OwnerID       string    `gorm:"size:32;index:idx_connected_accounts_owner" json:"owner_id"`
	OwnerKind     OwnerKind `gorm:"type:enum('borrower','investor')" json:"owner_kind"`
	RailAccountID string    `gorm:"size:64" json:"rail_account_id"`
	Scope         Scope     `gorm:"type:enum('read_only','read_write')" json:"scope"`
	// Base64 AES-GCM ciphertexts, never plaintext.
	AccessTokenEnc  string         `gorm:"type:text;column:access_token_enc" json:"-"`
	RefreshTokenEnc string         `gorm:"type:text;column:refresh_token_enc" json:"-"`
	IsActive        bool           `gorm:"column:is_active;default:true" json:"is_active"`
	LastSyncedAt    *time.Time     `gorm:"column:last_synced_at" json:"last_synced_at,omitempty"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ConnectedAccount) TableName() string { return "connected_accounts" }
