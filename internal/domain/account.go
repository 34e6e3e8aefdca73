// Package domain provides the account/transaction rule engine: entities,
// per-kind policies and the validation pipeline. It performs no I/O; callers
// persist the state it mutates.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the identity, balance and ordered ledger of one account.
// Balance always equals the sum of the transaction amounts; the ledger is
// non-decreasing by date. Mutate only through AddTransaction and
// AssessInterestAndFees.
type Account struct {
	ID           int32           `json:"id"`
	Kind         AccountKind     `json:"kind"`
	Balance      decimal.Decimal `json:"balance"`
	Transactions []Transaction   `json:"-"`
}

// NewAccount returns an empty account of the given kind.
func NewAccount(id int32, kind AccountKind) *Account {
	return &Account{ID: id, Kind: kind, Balance: decimal.Zero}
}

// Latest returns the most recent transaction, if any. The ledger is ordered,
// so this is the last element.
func (a *Account) Latest() (Transaction, bool) {
	if len(a.Transactions) == 0 {
		return Transaction{}, false
	}

	return a.Transactions[len(a.Transactions)-1], true
}

// SumTransactions recomputes the balance from the ledger. Used defensively
// to detect balance/history inconsistency when loading persisted state.
func (a *Account) SumTransactions() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range a.Transactions {
		sum = sum.Add(t.Amount)
	}

	return sum
}

// AddTransaction validates and appends a manual ledger entry. Checks run in
// order (chronological, frequency, overdraft); the first failure wins and
// leaves the account unchanged.
func (a *Account) AddTransaction(amount decimal.Decimal, date time.Time) (Transaction, error) {
	return a.add(amount, date, KindDeposit)
}

func (a *Account) add(amount decimal.Decimal, date time.Time, kind TransactionKind) (Transaction, error) {
	date = DateOnly(date)

	policy, ok := PolicyFor(a.Kind)
	if !ok {
		return Transaction{}, ErrUnsupportedKind
	}

	if last, exists := a.Latest(); exists && date.Before(last.Date) {
		return Transaction{}, &SequenceError{Latest: last.Date}
	}

	if err := a.checkFrequency(policy, date); err != nil {
		return Transaction{}, err
	}

	if !policy.AllowOverdraft && a.Balance.Add(amount).IsNegative() {
		return Transaction{}, ErrOverdrawn
	}

	t := Transaction{AccountID: a.ID, Amount: amount, Date: date, Kind: kind}
	a.Transactions = append(a.Transactions, t)
	a.Balance = a.Balance.Add(amount)

	return t, nil
}

func (a *Account) checkFrequency(policy Policy, date time.Time) error {
	var day, month int

	for _, t := range a.Transactions {
		if !sameMonth(t.Date, date) {
			continue
		}

		month++

		if t.Date.Equal(date) {
			day++
		}
	}

	if policy.DailyLimit > 0 && day >= policy.DailyLimit {
		return &LimitError{Limit: policy.DailyLimit, Window: LimitWindowDay}
	}

	if policy.MonthlyLimit > 0 && month >= policy.MonthlyLimit {
		return &LimitError{Limit: policy.MonthlyLimit, Window: LimitWindowMonth}
	}

	return nil
}

// AssessInterestAndFees posts the monthly interest transaction and, when the
// kind has a low-balance policy and the balance is under the threshold, a
// fee debit. The target month comes from the latest transaction, or from
// asOf on an empty ledger; postings are dated the last day of that month.
//
// A month counts as already assessed iff it contains an interest or fee
// transaction; a second call for the same month fails with a SequenceError
// carrying the prior posting's date. Postings go through the normal
// insertion path, so frequency and overdraft rules still apply to them.
// Amounts are rounded half away from zero at the cent, once, when finalized.
func (a *Account) AssessInterestAndFees(asOf time.Time) ([]Transaction, error) {
	target := DateOnly(asOf)
	if last, exists := a.Latest(); exists {
		target = last.Date
	}

	if prior, assessed := a.assessmentIn(target); assessed {
		return nil, &SequenceError{Latest: prior.Date}
	}

	policy, ok := PolicyFor(a.Kind)
	if !ok {
		return nil, ErrUnsupportedKind
	}

	assessDate := lastOfMonth(target)
	interest := a.Balance.Mul(policy.InterestRate).Round(2)

	posted := make([]Transaction, 0, 2)

	t, err := a.add(interest, assessDate, KindInterest)
	if err != nil {
		return nil, err
	}

	posted = append(posted, t)

	if policy.LowBalanceFee.IsPositive() && a.Balance.LessThan(policy.LowBalanceThreshold) {
		fee, err := a.add(policy.LowBalanceFee.Neg(), assessDate, KindFee)
		if err != nil {
			return posted, err
		}

		posted = append(posted, fee)
	}

	return posted, nil
}

func (a *Account) assessmentIn(month time.Time) (Transaction, bool) {
	for _, t := range a.Transactions {
		if t.Kind.System() && sameMonth(t.Date, month) {
			return t, true
		}
	}

	return Transaction{}, false
}
