package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	distDomain "rbf-backend/internal/domain/distribution"
	"rbf-backend/pkg/id"
)

func makeRecord(paymentID, participationID uint64) *distDomain.Record {
	return &distDomain.Record{
		RecordID:        id.NewID32(),
		PaymentID:       paymentID,
		ParticipationID: participationID,
		InvestorID:      id.NewID32(),
		AmountCents:     3333,
		PrincipalCents:  2333,
		ReturnCents:     1000,
		Status:          distDomain.StatusPending,
	}
}

func TestFindOrCreate_NewAndExisting(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	ctx := context.Background()

	rec := makeRecord(1, 10)
	got, err := repo.FindOrCreate(ctx, rec)
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if got.ID == 0 {
		t.Fatal("no auto-increment id assigned")
	}

	// same (payment, participation) returns the existing row, new id ignored
	again, err := repo.FindOrCreate(ctx, makeRecord(1, 10))
	if err != nil {
		t.Fatalf("FindOrCreate again: %v", err)
	}
	if again.ID != got.ID || again.RecordID != got.RecordID {
		t.Fatalf("got new row %+v, want reuse of %+v", again, got)
	}

	// different participation inserts a second row
	other, err := repo.FindOrCreate(ctx, makeRecord(1, 11))
	if err != nil {
		t.Fatalf("FindOrCreate other: %v", err)
	}
	if other.ID == got.ID {
		t.Fatal("distinct unit reused the same row")
	}
}

func TestClaimForProcessing_Guard(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	ctx := context.Background()

	rec, err := repo.FindOrCreate(ctx, makeRecord(2, 20))
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}

	claimed, err := repo.ClaimForProcessing(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ClaimForProcessing: %v", err)
	}
	if claimed.Status != distDomain.StatusProcessing {
		t.Fatalf("status = %s", claimed.Status)
	}

	// second claim must miss: the row is already processing
	if _, err := repo.ClaimForProcessing(ctx, rec.ID); !errors.Is(err, distDomain.ErrAlreadyBusy) {
		t.Fatalf("err = %v, want ErrAlreadyBusy", err)
	}

	// a failed record can be reclaimed for retry
	if err := repo.MarkFailed(ctx, rec.ID, "transfer refused"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if _, err := repo.ClaimForProcessing(ctx, rec.ID); err != nil {
		t.Fatalf("reclaim after failure: %v", err)
	}

	// an executed record can never be reclaimed
	if err := repo.MarkExecuted(ctx, rec.ID, "tr_1"); err != nil {
		t.Fatalf("MarkExecuted: %v", err)
	}
	if _, err := repo.ClaimForProcessing(ctx, rec.ID); !errors.Is(err, distDomain.ErrAlreadyBusy) {
		t.Fatalf("err = %v, want ErrAlreadyBusy", err)
	}
}

func TestClaimForProcessing_ReclaimsStaleProcessing(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	ctx := context.Background()

	rec, err := repo.FindOrCreate(ctx, makeRecord(5, 50))
	if err != nil {
		t.Fatalf("FindOrCreate: %v", err)
	}
	if _, err := repo.ClaimForProcessing(ctx, rec.ID); err != nil {
		t.Fatalf("ClaimForProcessing: %v", err)
	}

	// a run that dies after the transfer call leaves the row processing;
	// simulate its age by backdating updated_at (UpdateColumn skips the
	// auto-update hook)
	stale := time.Now().UTC().Add(-processingStaleAfter - time.Minute)
	if err := db.Model(&distRecordSQLite{}).Where("id = ?", rec.ID).
		UpdateColumn("updated_at", stale).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	claimed, err := repo.ClaimForProcessing(ctx, rec.ID)
	if err != nil {
		t.Fatalf("reclaim of stale row: %v", err)
	}
	if claimed.Status != distDomain.StatusProcessing {
		t.Fatalf("status = %s", claimed.Status)
	}

	// an executed row stays terminal no matter how old it is
	if err := repo.MarkExecuted(ctx, rec.ID, "tr_5"); err != nil {
		t.Fatalf("MarkExecuted: %v", err)
	}
	if err := db.Model(&distRecordSQLite{}).Where("id = ?", rec.ID).
		UpdateColumn("updated_at", stale).Error; err != nil {
		t.Fatalf("backdate executed: %v", err)
	}
	if _, err := repo.ClaimForProcessing(ctx, rec.ID); !errors.Is(err, distDomain.ErrAlreadyBusy) {
		t.Fatalf("err = %v, want ErrAlreadyBusy", err)
	}
}

func TestClaimForProcessing_MissingRecord(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	if _, err := repo.ClaimForProcessing(context.Background(), 9999); !errors.Is(err, distDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMarkExecuted_ClearsLastError(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	ctx := context.Background()

	rec, _ := repo.FindOrCreate(ctx, makeRecord(3, 30))
	if err := repo.MarkFailed(ctx, rec.ID, "boom"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	if err := repo.MarkExecuted(ctx, rec.ID, "tr_77"); err != nil {
		t.Fatalf("MarkExecuted: %v", err)
	}
	rows, err := repo.ListByPaymentID(ctx, 3)
	if err != nil || len(rows) != 1 {
		t.Fatalf("ListByPaymentID: %v (%d rows)", err, len(rows))
	}
	if rows[0].Status != distDomain.StatusExecuted || rows[0].TransferID != "tr_77" || rows[0].LastError != "" {
		t.Fatalf("row = %+v", rows[0])
	}
}

func TestAppendLog_OrderedPerRecord(t *testing.T) {
	db := openTestDB(t)
	repo := NewDistributionRepository(db)
	ctx := context.Background()

	rec, _ := repo.FindOrCreate(ctx, makeRecord(4, 40))
	now := time.Now().UTC()
	for i, st := range []distDomain.Status{distDomain.StatusFailed, distDomain.StatusExecuted} {
		if err := repo.AppendLog(ctx, &distDomain.LogEntry{
			EntryID:     id.NewID32(),
			RecordID:    rec.ID,
			Status:      st,
			BatchID:     "batch-1",
			Attempt:     i + 1,
			SubmittedAt: now,
			Extra:       map[string]string{"note": "retry path"},
		}); err != nil {
			t.Fatalf("AppendLog %d: %v", i, err)
		}
	}

	logs, err := repo.ListLogByRecordID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ListLogByRecordID: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("logs = %d, want 2", len(logs))
	}
	if logs[0].Status != distDomain.StatusFailed || logs[0].Attempt != 1 {
		t.Fatalf("logs[0] = %+v", logs[0])
	}
	if logs[1].Status != distDomain.StatusExecuted || logs[1].Attempt != 2 {
		t.Fatalf("logs[1] = %+v", logs[1])
	}
	if logs[1].Extra["note"] != "retry path" {
		t.Fatalf("extra = %v", logs[1].Extra)
	}
}
