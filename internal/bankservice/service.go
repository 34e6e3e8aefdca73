// Package bankservice manages business logic layer of the bank aggregate:
// startup load-or-create, opening accounts and lookups.
package bankservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

// Repo provides bank data access layer interface needed by bank service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package bankservice
type Repo interface {
	Get(ctx context.Context) (*domain.Bank, error)
	Create(ctx context.Context) (*domain.Bank, error)
}

// AccountRepo provides account data access layer interface needed by bank
// service layer.
type AccountRepo interface {
	Create(ctx context.Context, bankID int32, account *domain.Account) error
}

// Service facilitates bank service layer logic.
type Service struct {
	repo        Repo
	accountRepo AccountRepo
}

// New returns bank service struct to manage bank business logic.
func New(r Repo, ar AccountRepo) *Service {
	return &Service{repo: r, accountRepo: ar}
}

// LoadOrCreate hands back the previously persisted bank graph, or creates a
// fresh bank on first run.
func (s *Service) LoadOrCreate(ctx context.Context) (*domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	bank, err := s.repo.Get(ctx)
	if err == nil {
		return bank, nil
	}

	if !errors.Is(err, domain.ErrBankNotFound) {
		return nil, err
	}

	l.Info().Msg("no persisted bank found, creating one")

	return s.repo.Create(ctx)
}

// OpenAccount opens an account of the given kind and persists it. Unlike the
// core no-op contract, an unknown kind is surfaced as ErrUnsupportedKind.
func (s *Service) OpenAccount(ctx context.Context, bank *domain.Bank, kind domain.AccountKind) (*domain.Account, error) {
	l := zerolog.Ctx(ctx)

	account := bank.AddAccount(kind)
	if account == nil {
		l.Info().Str("kind", string(kind)).Msg("unsupported account kind")
		return nil, domain.ErrUnsupportedKind
	}

	if err := s.accountRepo.Create(ctx, bank.ID, account); err != nil {
		return nil, errorspkg.ErrInternal
	}

	return account, nil
}

// GetAccount returns the account with the given number.
func (s *Service) GetAccount(bank *domain.Bank, number int32) (*domain.Account, error) {
	account := bank.GetAccount(number)
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	return account, nil
}

// ListAccounts returns the bank's accounts in creation order.
func (s *Service) ListAccounts(bank *domain.Bank) []*domain.Account {
	return bank.Accounts
}
