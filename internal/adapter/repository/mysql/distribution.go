package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	distDomain "rbf-backend/internal/domain/distribution"
)

type DistributionRepository struct{ db *gorm.DB }

func NewDistributionRepository(db *gorm.DB) *DistributionRepository {
	return &DistributionRepository{db: db}
}

func (r *DistributionRepository) FindOrCreate(ctx context.Context, rec *distDomain.Record) (*distDomain.Record, error) {
	var out distDomain.Record
	err := r.db.WithContext(ctx).
		Where("payment_id = ? AND participation_id = ?", rec.PaymentID, rec.ParticipationID).
		First(&out).Error
	if err == nil {
		return &out, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		// lost an insert race: the unique (payment, participation) key means
		// the winner's row is the one to use
		var winner distDomain.Record
		if ferr := r.db.WithContext(ctx).
			Where("payment_id = ? AND participation_id = ?", rec.PaymentID, rec.ParticipationID).
			First(&winner).Error; ferr == nil {
			return &winner, nil
		}
		return nil, err
	}
	return rec, nil
}

// processingStaleAfter bounds how long a processing claim is honored. A run
// that dies between the transfer call and the status write leaves its record
// processing forever; after this deadline the record may be reclaimed, and
// the record-derived idempotency key makes the retried transfer a no-op on
// the rail side.
const processingStaleAfter = 15 * time.Minute

// ClaimForProcessing is the double-submission lock: a pending or failed
// record transitions to processing via a status-guarded conditional update.
// A record stuck in processing past the staleness deadline can be reclaimed.
func (r *DistributionRepository) ClaimForProcessing(ctx context.Context, recordNumericID uint64) (*distDomain.Record, error) {
	staleBefore := time.Now().UTC().Add(-processingStaleAfter)
	res := r.db.WithContext(ctx).
		Model(&distDomain.Record{}).
		Where("id = ? AND (status IN ? OR (status = ? AND updated_at < ?))",
			recordNumericID,
			[]distDomain.Status{distDomain.StatusPending, distDomain.StatusFailed},
			distDomain.StatusProcessing, staleBefore).
		Update("status", distDomain.StatusProcessing)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var cur distDomain.Record
		if err := r.db.WithContext(ctx).Where("id = ?", recordNumericID).First(&cur).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, distDomain.ErrNotFound
			}
			return nil, err
		}
		return nil, distDomain.ErrAlreadyBusy
	}
	var out distDomain.Record
	if err := r.db.WithContext(ctx).Where("id = ?", recordNumericID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DistributionRepository) MarkExecuted(ctx context.Context, recordNumericID uint64, transferID string) error {
	return r.db.WithContext(ctx).
		Model(&distDomain.Record{}).
		Where("id = ?", recordNumericID).
		Updates(map[string]any{
			"status":      distDomain.StatusExecuted,
			"transfer_id": transferID,
			"last_error":  "",
		}).Error
}

func (r *DistributionRepository) MarkFailed(ctx context.Context, recordNumericID uint64, cause string) error {
	return r.db.WithContext(ctx).
		Model(&distDomain.Record{}).
		Where("id = ?", recordNumericID).
		Updates(map[string]any{
			"status":     distDomain.StatusFailed,
			"last_error": cause,
		}).Error
}

func (r *DistributionRepository) ListByPaymentID(ctx context.Context, paymentNumericID uint64) ([]distDomain.Record, error) {
	var out []distDomain.Record
	res := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

// AppendLog inserts an audit entry. There is deliberately no update or
// delete counterpart: the log is append-only.
func (r *DistributionRepository) AppendLog(ctx context.Context, e *distDomain.LogEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *DistributionRepository) ListLogByRecordID(ctx context.Context, recordNumericID uint64) ([]distDomain.LogEntry, error) {
	var out []distDomain.LogEntry
	res := r.db.WithContext(ctx).
		Where("record_id = ?", recordNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
