package rail

import "time"

// Wire types for the external payment rail. All amounts are integer minor
// currency units (cents); all list endpoints are cursor-paginated with
// StartingAfter set to the id of the previous page's last item.

type TransferRequest struct {
	// Destination is the rail-side connected account id.
	Destination    string            `json:"destination"`
	AmountCents    int64             `json:"amount"`
	Currency       string            `json:"currency"`
	IdempotencyKey string            `json:"-"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type Transfer struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"`
	AmountCents int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created"`
}

type Charge struct {
	ID            string    `json:"id"`
	AmountCents   int64     `json:"amount"`
	CapturedCents int64     `json:"amount_captured"`
	RefundedCents int64     `json:"amount_refunded"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"` // succeeded | pending | failed
	CustomerID    string    `json:"customer"`
	CreatedAt     time.Time `json:"created"`
}

type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created"`
}

type Invoice struct {
	ID              string    `json:"id"`
	AmountDueCents  int64     `json:"amount_due"`
	AmountPaidCents int64     `json:"amount_paid"`
	Currency        string    `json:"currency"`
	Status          string    `json:"status"` // paid | open | void | uncollectible
	CustomerID      string    `json:"customer"`
	CreatedAt       time.Time `json:"created"`
}

type Account struct {
	ID             string `json:"id"`
	ChargesEnabled bool   `json:"charges_enabled"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
}

// ListQuery bounds a list call to one connected account and a time window.
// The window filter is applied rail-side on every page request.
type ListQuery struct {
	RailAccountID string
	// AccessToken, when set, authenticates the call as the connected account
	// instead of the platform. Held in memory only; never logged.
	AccessToken   string
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Limit         int
	StartingAfter string
}

type ChargePage struct {
	Items   []Charge `json:"data"`
	HasMore bool     `json:"has_more"`
}

type CustomerPage struct {
	Items   []Customer `json:"data"`
	HasMore bool       `json:"has_more"`
}

type InvoicePage struct {
	Items   []Invoice `json:"data"`
	HasMore bool      `json:"has_more"`
}
