package metrics

import "context"

type Repository interface {
	// Upsert inserts or overwrites the snapshot keyed by (account, period).
	Upsert(ctx context.Context, s *Snapshot) error
	GetByAccountPeriod(ctx context.Context, accountNumericID uint64, period string) (*Snapshot, error)
}
