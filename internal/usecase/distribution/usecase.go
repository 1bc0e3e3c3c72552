package distribution

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rbf-backend/internal/domain/account"
	"rbf-backend/internal/domain/contract"
	dist "rbf-backend/internal/domain/distribution"
	"rbf-backend/internal/domain/payment"
	"rbf-backend/internal/domain/rail"
	"rbf-backend/internal/domain/uow"
	"rbf-backend/pkg/id"
)

// Usecase orchestrates the fan-out of one settled payment to its investors:
// split, transfer per investor, durable record and audit log per attempt.
// One investor's failure never blocks or rolls back another's transfer.
type Usecase struct {
	payments  payment.Repository
	contracts contract.Repository
	dists     dist.Repository
	accounts  account.Repository
	uow       uow.UnitOfWork
	railc     rail.Client

	principalBps int64
}

func NewUsecase(
	payments payment.Repository,
	contracts contract.Repository,
	dists dist.Repository,
	accounts account.Repository,
	tx uow.UnitOfWork,
	railc rail.Client,
	principalBps int64,
) *Usecase {
	return &Usecase{
		payments:     payments,
		contracts:    contracts,
		dists:        dists,
		accounts:     accounts,
		uow:          tx,
		railc:        railc,
		principalBps: principalBps,
	}
}

// Distribute settles one payment across the contract's investors.
// Re-invocation is safe: executed units are skipped, only pending/failed
// units are retried, and the per-record idempotency key means a retried
// transfer cannot double-pay.
func (u *Usecase) Distribute(ctx context.Context, paymentID string) (*Result, error) {
	p, err := u.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrNotFound
		}
		return nil, err
	}
	if p.Status != payment.StatusPaid || p.PaidAmountCents == nil {
		return nil, payment.ErrNotSettled
	}

	ct, err := u.contracts.GetByID(ctx, p.ContractID)
	if err != nil {
		return nil, err
	}
	parts, err := u.contracts.ListParticipations(ctx, p.ContractID)
	if err != nil {
		return nil, err
	}

	stakes := make([]Stake, len(parts))
	for i, pt := range parts {
		stakes[i] = Stake{InvestorID: pt.InvestorID, Percentage: pt.PercentageShare}
	}
	// Calculator errors mean the whole computation is untrustworthy: abort
	// before any transfer is attempted.
	shares, err := SplitPayment(*p.PaidAmountCents, stakes)
	if err != nil {
		return nil, err
	}

	// The repayment counter bump is keyed on a guarded flag on the payment
	// row, flipped in the same transaction: exactly one invocation ever
	// wins, even when a run produced no records (all units skipped).
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		won, err := r.Payments.ClaimPaidToDateBump(ctx, p.ID)
		if err != nil {
			return err
		}
		if !won {
			return nil
		}
		return r.Contracts.AddPaidToDate(ctx, ct.ID, *p.PaidAmountCents)
	}); err != nil {
		return nil, err
	}

	res := &Result{
		PaymentID: p.PaymentID,
		BatchID:   uuid.NewString(),
		Outcomes:  make([]Outcome, 0, len(shares)),
	}
	for i, share := range shares {
		out := u.distributeUnit(ctx, p, ct, parts[i], share, res.BatchID)
		switch out.Status {
		case OutcomeExecuted:
			res.Executed++
		case OutcomeFailed:
			res.Failed++
		default:
			res.Skipped++
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res, nil
}

// distributeUnit handles one (investor, amount) pair end to end. Errors stay
// inside the returned outcome; the batch always continues to the next unit.
func (u *Usecase) distributeUnit(ctx context.Context, p *payment.Payment, ct *contract.Contract, part contract.Participation, share Share, batchID string) Outcome {
	out := Outcome{
		InvestorID:      part.InvestorID,
		ParticipationID: part.ParticipationID,
		AmountCents:     share.AmountCents,
	}

	acct, err := u.accounts.GetActivePayoutAccount(ctx, part.InvestorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, account.ErrNotFound) {
			out.Status = OutcomeSkipped
			out.Reason = dist.ErrNoAccount.Error()
			return out
		}
		out.Status = OutcomeFailed
		out.Reason = err.Error()
		return out
	}

	principalCents, returnCents := SplitPortions(share.AmountCents, u.principalBps)
	rec, err := u.dists.FindOrCreate(ctx, &dist.Record{
		RecordID:        id.NewID32(),
		PaymentID:       p.ID,
		ParticipationID: part.ID,
		InvestorID:      part.InvestorID,
		AmountCents:     share.AmountCents,
		PrincipalCents:  principalCents,
		ReturnCents:     returnCents,
		Status:          dist.StatusPending,
	})
	if err != nil {
		out.Status = OutcomeFailed
		out.Reason = err.Error()
		return out
	}
	out.RecordID = rec.RecordID

	if rec.Status == dist.StatusExecuted {
		// Already paid on a previous run: nothing to submit.
		out.Status = OutcomeSkipped
		out.TransferID = rec.TransferID
		out.Reason = "already executed"
		return out
	}

	// Status-guarded claim: only one run may hold a record as processing.
	rec, err = u.dists.ClaimForProcessing(ctx, rec.ID)
	if err != nil {
		if errors.Is(err, dist.ErrAlreadyBusy) {
			out.Status = OutcomeSkipped
			out.Reason = "claimed by a concurrent run"
			return out
		}
		out.Status = OutcomeFailed
		out.Reason = err.Error()
		return out
	}

	attempt := 1
	if logs, err := u.dists.ListLogByRecordID(ctx, rec.ID); err == nil {
		attempt = len(logs) + 1
	}

	submittedAt := time.Now().UTC()
	tr, err := u.railc.CreateTransfer(ctx, rail.TransferRequest{
		Destination: acct.RailAccountID,
		AmountCents: rec.AmountCents,
		Currency:    ct.Currency,
		// Derived from the record's public id: stable across retries.
		IdempotencyKey: "repasse-" + rec.RecordID,
		Metadata: map[string]string{
			"payment_id": p.PaymentID,
			"record_id":  rec.RecordID,
			"batch_id":   batchID,
		},
	})
	if err != nil {
		if persistErr := u.recordFailure(ctx, rec.ID, batchID, attempt, submittedAt, err); persistErr != nil {
			log.Printf("distribution: record %s: persist failure: %v", rec.RecordID, persistErr)
		}
		out.Status = OutcomeFailed
		out.Reason = err.Error()
		return out
	}

	if persistErr := u.recordSuccess(ctx, rec.ID, batchID, attempt, submittedAt, tr.ID); persistErr != nil {
		log.Printf("distribution: record %s: persist success: %v", rec.RecordID, persistErr)
		out.Status = OutcomeFailed
		out.Reason = persistErr.Error()
		return out
	}
	out.Status = OutcomeExecuted
	out.TransferID = tr.ID
	return out
}

func (u *Usecase) recordSuccess(ctx context.Context, recID uint64, batchID string, attempt int, submittedAt time.Time, transferID string) error {
	confirmedAt := time.Now().UTC()
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Distributions.AppendLog(ctx, &dist.LogEntry{
			EntryID:     id.NewID32(),
			RecordID:    recID,
			Status:      dist.StatusExecuted,
			TransferID:  transferID,
			BatchID:     batchID,
			Attempt:     attempt,
			SubmittedAt: submittedAt,
			ConfirmedAt: &confirmedAt,
		}); err != nil {
			return err
		}
		return r.Distributions.MarkExecuted(ctx, recID, transferID)
	})
}

func (u *Usecase) recordFailure(ctx context.Context, recID uint64, batchID string, attempt int, submittedAt time.Time, cause error) error {
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Distributions.AppendLog(ctx, &dist.LogEntry{
			EntryID:     id.NewID32(),
			RecordID:    recID,
			Status:      dist.StatusFailed,
			BatchID:     batchID,
			Attempt:     attempt,
			SubmittedAt: submittedAt,
			ErrorMsg:    cause.Error(),
		}); err != nil {
			return err
		}
		return r.Distributions.MarkFailed(ctx, recID, cause.Error())
	})
}
