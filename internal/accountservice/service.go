// Package accountservice manages business logic layer of accounts: it runs
// the core rule engine and commits every successful mutation to the
// persistence collaborator.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

// TransactionRepo provides transaction data access layer interface needed by
// account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type TransactionRepo interface {
	Create(ctx context.Context, bankID int32, transaction domain.Transaction) (domain.Transaction, error)
}

// AccountRepo provides account data access layer interface needed by account
// service layer.
type AccountRepo interface {
	SetBalance(ctx context.Context, bankID, number int32, balance decimal.Decimal) error
}

// Service facilitates account service layer logic.
type Service struct {
	transactionRepo TransactionRepo
	accountRepo     AccountRepo
}

// New returns account service struct to manage account business logic.
func New(tr TransactionRepo, ar AccountRepo) *Service {
	return &Service{transactionRepo: tr, accountRepo: ar}
}

// AddTransaction validates and records a transaction on the account, then
// persists the new ledger entry and balance. Business-rule failures come
// back as the typed domain errors; a persistence failure is ErrInternal (the
// in-memory state then runs ahead of durable state until the next commit).
func (s *Service) AddTransaction(ctx context.Context, bankID int32, account *domain.Account, amount decimal.Decimal, date time.Time) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	t, err := account.AddTransaction(amount, date)
	if err != nil {
		l.Info().Err(err).Int32("account", account.ID).Send()
		return domain.Transaction{}, err
	}

	return s.commit(ctx, bankID, account, t)
}

// AssessInterestAndFees runs the monthly assessment and persists whatever it
// posted. A posting can fail the business rules after an earlier one
// succeeded; the earlier posting is still committed and the rule error is
// returned.
func (s *Service) AssessInterestAndFees(ctx context.Context, bankID int32, account *domain.Account, asOf time.Time) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	posted, assessErr := account.AssessInterestAndFees(asOf)
	if assessErr != nil {
		l.Info().Err(assessErr).Int32("account", account.ID).Send()
	}

	committed := make([]domain.Transaction, 0, len(posted))

	for _, t := range posted {
		ct, err := s.commit(ctx, bankID, account, t)
		if err != nil {
			return committed, err
		}

		committed = append(committed, ct)
	}

	return committed, assessErr
}

// ListTransactions returns a copy of the account's ledger.
func (s *Service) ListTransactions(account *domain.Account) []domain.Transaction {
	out := make([]domain.Transaction, len(account.Transactions))
	copy(out, account.Transactions)

	return out
}

func (s *Service) commit(ctx context.Context, bankID int32, account *domain.Account, t domain.Transaction) (domain.Transaction, error) {
	created, err := s.transactionRepo.Create(ctx, bankID, t)
	if err != nil {
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	// Propagate the row id to the oldest uncommitted ledger entry it matches.
	for i := range account.Transactions {
		e := &account.Transactions[i]
		if e.ID == 0 && e.Kind == created.Kind && e.Date.Equal(created.Date) && e.Amount.Equal(created.Amount) {
			e.ID = created.ID
			break
		}
	}

	if err := s.accountRepo.SetBalance(ctx, bankID, account.ID, account.Balance); err != nil {
		return created, errorspkg.ErrInternal
	}

	return created, nil
}
