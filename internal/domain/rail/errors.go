package rail

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	// KindTransient: timeouts, 5xx, rate limits. Safe to retry with the same
	// idempotency key.
	KindTransient ErrorKind = "transient"
	// KindPermanent: invalid destination, insufficient balance, bad request.
	KindPermanent ErrorKind = "permanent"
	// KindCredential: the rail rejected the account's credentials.
	KindCredential ErrorKind = "credential"
)

type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("rail: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("rail: %s: %s", e.Kind, e.Message)
}

func NewError(kind ErrorKind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Message: msg}
}

func IsTransient(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindTransient
}

func IsCredential(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindCredential
}
