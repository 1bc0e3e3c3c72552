package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	accountDomain "rbf-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) GetActivePayoutAccount(ctx context.Context, investorID string) (*accountDomain.ConnectedAccount, error) {
	var out accountDomain.ConnectedAccount
	res := r.db.WithContext(ctx).
		Where("owner_id = ? AND owner_kind = ? AND scope = ? AND is_active = ?",
			investorID, accountDomain.OwnerInvestor, accountDomain.ScopeReadWrite, true).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *AccountRepository) ListActiveMonitored(ctx context.Context) ([]accountDomain.ConnectedAccount, error) {
	var out []accountDomain.ConnectedAccount
	res := r.db.WithContext(ctx).
		Where("scope = ? AND is_active = ?", accountDomain.ScopeReadOnly, true).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// Deactivate flips is_active off; accounts are never deleted.
func (r *AccountRepository) Deactivate(ctx context.Context, accountNumericID uint64) error {
	return r.db.WithContext(ctx).
		Model(&accountDomain.ConnectedAccount{}).
		Where("id = ?", accountNumericID).
		Update("is_active", false).Error
}

func (r *AccountRepository) TouchLastSynced(ctx context.Context, accountNumericID uint64) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&accountDomain.ConnectedAccount{}).
		Where("id = ?", accountNumericID).
		Update("last_synced_at", now).Error
}
