package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrBankNotFound indicates that no bank has been persisted yet.
	ErrBankNotFound = errors.New("bank not found")
	// ErrOverdrawn indicates that the transaction would drive the balance
	// negative on an account kind that forbids overdrafts.
	ErrOverdrawn = errors.New("insufficient account balance")
	// ErrUnsupportedKind indicates an unknown account kind string.
	ErrUnsupportedKind = errors.New("unsupported account kind")
	// ErrInconsistentBalance indicates that a stored balance does not equal
	// the sum of the stored transaction amounts. It is a programming or data
	// corruption error, not a business-rule failure.
	ErrInconsistentBalance = errors.New("account balance does not match transaction history")
)

// LimitWindow names the calendar window of an exceeded frequency limit.
type LimitWindow string

// Frequency limit windows.
const (
	LimitWindowDay   LimitWindow = "day"
	LimitWindowMonth LimitWindow = "month"
)

// SequenceError indicates a chronologically invalid operation: a back-dated
// transaction, or an interest/fee assessment for a month that already has
// one. Latest is the conflicting prior date.
type SequenceError struct {
	Latest time.Time
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("new transactions must be dated %s or later", e.Latest.Format(DateLayout))
}

// LimitError indicates that a transaction would exceed the account kind's
// frequency cap for the given window.
type LimitError struct {
	Limit  int
	Window LimitWindow
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("account already has %d transactions in this %s", e.Limit, e.Window)
}
