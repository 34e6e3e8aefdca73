package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used across the application.
const DateLayout = "2006-01-02"

// TransactionKind distinguishes manual ledger entries from system-generated
// interest and fee postings.
type TransactionKind string

// Transaction kinds.
const (
	KindDeposit  TransactionKind = "deposit"
	KindInterest TransactionKind = "interest"
	KindFee      TransactionKind = "fee"
)

// System reports whether the kind is posted by the monthly assessment rather
// than by a user.
func (k TransactionKind) System() bool {
	return k == KindInterest || k == KindFee
}

// Transaction is one immutable ledger entry. Amount is a signed exact
// decimal (negative = debit); Date carries no time component.
type Transaction struct {
	ID        int64           `json:"id"`
	AccountID int32           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Kind      TransactionKind `json:"kind"`
}

// DateOnly strips the time component, normalizing to midnight UTC so that
// dates compare by calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func lastOfMonth(t time.Time) time.Time {
	firstOfNext := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return firstOfNext.AddDate(0, 0, -1)
}
