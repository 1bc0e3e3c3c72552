package railhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rbf-backend/internal/domain/rail"
	"rbf-backend/pkg/retry"
)

// Client talks HTTP to the payment rail. Stateless apart from configuration;
// construct one per process and inject it, or substitute a fake in tests.
type Client struct {
	baseURL string
	secret  string
	hc      *http.Client
	policy  retry.Policy
}

var _ rail.Client = (*Client)(nil)

// NewClient builds a rail client. timeout bounds each HTTP request and must
// stay below the policy's total budget so a stuck call cannot stall a batch.
func NewClient(baseURL, secret string, timeout time.Duration, policy retry.Policy) *Client {
	if policy.Retryable == nil {
		policy.Retryable = rail.IsTransient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		hc:      &http.Client{Timeout: timeout},
		policy:  policy,
	}
}

func (c *Client) CreateTransfer(ctx context.Context, req rail.TransferRequest) (*rail.Transfer, error) {
	form := url.Values{}
	form.Set("destination", req.Destination)
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	for k, v := range req.Metadata {
		form.Set("metadata["+k+"]", v)
	}

	var out rail.Transfer
	hdr := map[string]string{"Idempotency-Key": req.IdempotencyKey}
	// The idempotency key rides along unchanged on every attempt, so a
	// retried call cannot double-pay.
	if err := c.do(ctx, http.MethodPost, "/transfers", hdr, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCharges(ctx context.Context, q rail.ListQuery) (*rail.ChargePage, error) {
	var out rail.ChargePage
	if err := c.doList(ctx, "/charges", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCustomers(ctx context.Context, q rail.ListQuery) (*rail.CustomerPage, error) {
	var out rail.CustomerPage
	if err := c.doList(ctx, "/customers", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListInvoices(ctx context.Context, q rail.ListQuery) (*rail.InvoicePage, error) {
	var out rail.InvoicePage
	if err := c.doList(ctx, "/invoices", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RetrieveAccount(ctx context.Context, railAccountID string) (*rail.Account, error) {
	var out rail.Account
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(railAccountID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) doList(ctx context.Context, path string, q rail.ListQuery, out any) error {
	vals := url.Values{}
	if q.Limit > 0 {
		vals.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.StartingAfter != "" {
		vals.Set("starting_after", q.StartingAfter)
	}
	if !q.CreatedAfter.IsZero() {
		vals.Set("created[gte]", strconv.FormatInt(q.CreatedAfter.Unix(), 10))
	}
	if !q.CreatedBefore.IsZero() {
		vals.Set("created[lt]", strconv.FormatInt(q.CreatedBefore.Unix(), 10))
	}
	hdr := map[string]string{}
	if q.RailAccountID != "" {
		hdr["Rail-Account"] = q.RailAccountID
	}
	if q.AccessToken != "" {
		hdr["Authorization"] = "Bearer " + q.AccessToken
	}
	return c.do(ctx, http.MethodGet, path+"?"+vals.Encode(), hdr, nil, out)
}

// do executes one call with the retry policy. The request body is rebuilt
// per attempt; headers (including the idempotency key) are identical across
// attempts.
func (c *Client) do(ctx context.Context, method, path string, hdr map[string]string, form url.Values, out any) error {
	return c.policy.Do(ctx, func() error {
		var body io.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return rail.NewError(rail.KindPermanent, 0, err.Error())
		}
		req.Header.Set("Authorization", "Bearer "+c.secret)
		if form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		for k, v := range hdr {
			req.Header.Set(k, v) // may override the platform Authorization
		}

		resp, err := c.hc.Do(req)
		if err != nil {
			// network failures and request timeouts count as transient
			return rail.NewError(rail.KindTransient, 0, err.Error())
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			return readError(resp)
		}
		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return rail.NewError(rail.KindPermanent, resp.StatusCode, "decode response: "+err.Error())
			}
		}
		return nil
	})
}

func readError(resp *http.Response) *rail.Error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(b, &payload)
	msg := payload.Error.Message
	if msg == "" {
		msg = fmt.Sprintf("http %d", resp.StatusCode)
	}
	return rail.NewError(classify(resp.StatusCode), resp.StatusCode, msg)
}

func classify(status int) rail.ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return rail.KindCredential
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		return rail.KindTransient
	default:
		return rail.KindPermanent
	}
}
