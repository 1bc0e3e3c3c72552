package monitoring

import (
	"context"
	"fmt"
	"log"
	"time"

	"rbf-backend/internal/domain/account"
	"rbf-backend/internal/domain/metrics"
	"rbf-backend/internal/domain/rail"
)

// Decrypter turns a stored ciphertext back into a usable rail token.
// Satisfied by infrastructure/crypto.Cipher.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// Usecase runs the billing-cycle monitoring job: per active read-only
// account, collect the prior month's rail history, aggregate it and upsert
// the snapshot. Account failures are isolated; credential rejections
// deactivate the account so future runs skip it.
type Usecase struct {
	accounts  account.Repository
	snapshots metrics.Repository
	collector *Collector
	decrypter Decrypter

	// now is injectable for period computation in tests.
	now func() time.Time
}

func NewUsecase(accounts account.Repository, snapshots metrics.Repository, collector *Collector, decrypter Decrypter) *Usecase {
	return &Usecase{
		accounts:  accounts,
		snapshots: snapshots,
		collector: collector,
		decrypter: decrypter,
		now:       time.Now,
	}
}

// RunMonthlyJob processes every eligible account for the prior calendar
// month. Idempotent: snapshots upsert on (account, period). Returns one
// result per account; an individual failure never raises.
func (u *Usecase) RunMonthlyJob(ctx context.Context) ([]JobResult, error) {
	// prior calendar month, [start, end)
	nowUTC := u.now().UTC()
	end := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, -1, 0)
	return u.runWindow(ctx, start, end)
}

// RunJobForPeriod recomputes snapshots for an explicit calendar month
// ("YYYY-MM"). Used for backfills; upserting makes rerunning a past period
// harmless.
func (u *Usecase) RunJobForPeriod(ctx context.Context, period string) ([]JobResult, error) {
	start, err := time.ParseInLocation("2006-01", period, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse period %q: %w", period, err)
	}
	return u.runWindow(ctx, start, start.AddDate(0, 1, 0))
}

func (u *Usecase) runWindow(ctx context.Context, start, end time.Time) ([]JobResult, error) {
	accounts, err := u.accounts.ListActiveMonitored(ctx)
	if err != nil {
		return nil, err
	}
	period := start.Format("2006-01")
	results := make([]JobResult, 0, len(accounts))
	for _, acct := range accounts {
		results = append(results, u.runAccount(ctx, acct, start, end, period))
	}
	return results, nil
}

func (u *Usecase) runAccount(ctx context.Context, acct account.ConnectedAccount, start, end time.Time, period string) JobResult {
	res := JobResult{AccountID: acct.AccountID, Period: period, Status: JobOK}

	fail := func(err error) JobResult {
		res.Status = JobFailed
		res.Error = err.Error()
		if rail.IsCredential(err) {
			// Rejected credentials: flip the account off so future runs
			// skip it. No retry within this run.
			if derr := u.accounts.Deactivate(ctx, acct.ID); derr != nil {
				log.Printf("monitoring: account %s: deactivate: %v", acct.AccountID, derr)
			} else {
				res.Deactivated = true
			}
		}
		return res
	}

	// The decrypted token lives only on the stack for this account's run.
	token, err := u.decrypter.Decrypt(acct.AccessTokenEnc)
	if err != nil {
		return fail(err)
	}

	charges, err := u.collector.Charges(ctx, acct.RailAccountID, token, start, end)
	if err != nil {
		return fail(err)
	}
	customers, err := u.collector.Customers(ctx, acct.RailAccountID, token, start, end)
	if err != nil {
		return fail(err)
	}
	invoices, err := u.collector.Invoices(ctx, acct.RailAccountID, token, start, end)
	if err != nil {
		return fail(err)
	}

	m := Aggregate(charges, customers, invoices, start, end)
	if err := u.snapshots.Upsert(ctx, m.Snapshot(acct.ID, period)); err != nil {
		return fail(err)
	}
	if err := u.accounts.TouchLastSynced(ctx, acct.ID); err != nil {
		return fail(err)
	}
	return res
}
