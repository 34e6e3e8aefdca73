package domain

import "github.com/shopspring/decimal"

// AccountKind selects the policy parameter set for an account. The kind is
// fixed at creation.
type AccountKind string

// Supported account kinds.
const (
	Savings  AccountKind = "savings"
	Checking AccountKind = "checking"
)

// Policy carries the rule parameters of one account kind. The shared
// validation pipeline reads these values; adding a kind means adding a
// parameter set, not new validation branches.
type Policy struct {
	// DailyLimit and MonthlyLimit cap the number of transactions per
	// calendar day/month. Zero means uncapped.
	DailyLimit   int
	MonthlyLimit int
	// InterestRate is applied to the balance once per month.
	InterestRate decimal.Decimal
	// LowBalanceFee is debited by the monthly assessment when the balance is
	// below LowBalanceThreshold. A zero fee disables the policy.
	LowBalanceFee       decimal.Decimal
	LowBalanceThreshold decimal.Decimal
	// AllowOverdraft permits the balance to go negative.
	AllowOverdraft bool
}

// Default per-kind parameter sets.
var (
	SavingsPolicy = Policy{
		DailyLimit:   2,
		MonthlyLimit: 5,
		InterestRate: decimal.RequireFromString("0.0041"),
	}
	CheckingPolicy = Policy{
		InterestRate:        decimal.RequireFromString("0.0008"),
		LowBalanceFee:       decimal.RequireFromString("5.44"),
		LowBalanceThreshold: decimal.RequireFromString("100.00"),
		AllowOverdraft:      true,
	}
)

// PolicyFor returns the parameter set for the given kind. The second return
// value is false for an unknown kind.
func PolicyFor(kind AccountKind) (Policy, bool) {
	switch kind {
	case Savings:
		return SavingsPolicy, true
	case Checking:
		return CheckingPolicy, true
	}

	return Policy{}, false
}
