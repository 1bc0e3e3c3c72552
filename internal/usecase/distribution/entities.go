package distribution

// OutcomeStatus classifies one investor's unit within a distribution run.
type OutcomeStatus string

const (
	OutcomeExecuted OutcomeStatus = "executed"
	OutcomeFailed   OutcomeStatus = "failed"
	OutcomeSkipped  OutcomeStatus = "skipped"
)

type Outcome struct {
	InvestorID      string        `json:"investor_id"`
	ParticipationID string        `json:"participation_id"`
	RecordID        string        `json:"record_id,omitempty"`
	Status          OutcomeStatus `json:"status"`
	AmountCents     int64         `json:"amount_cents"`
	TransferID      string        `json:"transfer_id,omitempty"`
	Reason          string        `json:"reason,omitempty"`
}

// Result summarizes one distribution run. Partial success is a normal
// outcome, not an error state.
type Result struct {
	PaymentID string    `json:"payment_id"`
	BatchID   string    `json:"batch_id"`
	Executed  int       `json:"executed"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Outcomes  []Outcome `json:"outcomes"`
}
