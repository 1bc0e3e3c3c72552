package distribution

import "context"

type Repository interface {
	// FindOrCreate returns the existing record for (payment, participation)
	// or inserts r as pending. The unique key makes concurrent creates safe.
	FindOrCreate(ctx context.Context, r *Record) (*Record, error)
	// ClaimForProcessing transitions pending/failed -> processing guarded by
	// the current status, so two orchestrator runs cannot both win the same
	// record. Records left processing past a staleness deadline may be
	// claimed again. Returns ErrAlreadyBusy when the guard misses.
	ClaimForProcessing(ctx context.Context, recordNumericID uint64) (*Record, error)
	MarkExecuted(ctx context.Context, recordNumericID uint64, transferID string) error
	MarkFailed(ctx context.Context, recordNumericID uint64, cause string) error
	ListByPaymentID(ctx context.Context, paymentNumericID uint64) ([]Record, error)

	AppendLog(ctx context.Context, e *LogEntry) error
	ListLogByRecordID(ctx context.Context, recordNumericID uint64) ([]LogEntry, error)
}
