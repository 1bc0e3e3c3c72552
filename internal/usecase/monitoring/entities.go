package monitoring

import "fmt"

// CollectionError marks a failed page fetch; it fails that account's run
// only. The cause (including credential rejections) stays reachable through
// Unwrap.
type CollectionError struct {
	Kind string // charges | customers | invoices
	Err  error
}

func (e *CollectionError) Error() string {
	return fmt.Sprintf("collect %s: %v", e.Kind, e.Err)
}

func (e *CollectionError) Unwrap() error { return e.Err }

type JobStatus string

const (
	JobOK     JobStatus = "ok"
	JobFailed JobStatus = "failed"
)

// JobResult is one account's outcome within a monthly run. The scheduler
// returns one per eligible account, success or failure, and never aborts the
// run for a single account.
type JobResult struct {
	AccountID   string    `json:"account_id"`
	Period      string    `json:"period"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	Deactivated bool      `json:"deactivated,omitempty"`
}
