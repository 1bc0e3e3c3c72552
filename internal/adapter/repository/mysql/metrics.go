package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	metricsDomain "rbf-backend/internal/domain/metrics"
)

type MetricsRepository struct{ db *gorm.DB }

func NewMetricsRepository(db *gorm.DB) *MetricsRepository { return &MetricsRepository{db: db} }

// Upsert overwrites the snapshot for (account, period). Snapshots are
// derived data, so recomputing and overwriting is always safe.
func (r *MetricsRepository) Upsert(ctx context.Context, s *metricsDomain.Snapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "connected_account_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"mrr", "churn_rate", "new_customers", "total_charges", "total_refunds", "updated_at",
			}),
		}).
		Create(s).Error
}

func (r *MetricsRepository) GetByAccountPeriod(ctx context.Context, accountNumericID uint64, period string) (*metricsDomain.Snapshot, error) {
	var out metricsDomain.Snapshot
	res := r.db.WithContext(ctx).
		Where("connected_account_id = ? AND period = ?", accountNumericID, period).
		First(&out)
	return &out, res.Error
}
