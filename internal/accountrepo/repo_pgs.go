// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    accounts (bank_id, number, kind, balance)
VALUES
    ($1, $2, $3, $4)
`

// Create persists a newly opened account.
func (r *RepoPGS) Create(ctx context.Context, bankID int32, account *domain.Account) error {
	l := zerolog.Ctx(ctx)

	_, err := r.db.ExecContext(ctx, createQuery, bankID, account.ID, account.Kind, account.Balance)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_bank_id_fkey" {
				return domain.ErrBankNotFound
			}
		}

		return errorspkg.ErrInternal
	}

	return nil
}

const setBalanceQuery = `
UPDATE accounts
SET balance = $1
WHERE bank_id = $2 AND number = $3
RETURNING number
`

// SetBalance stores the account's current balance.
func (r *RepoPGS) SetBalance(ctx context.Context, bankID, number int32, balance decimal.Decimal) error {
	l := zerolog.Ctx(ctx)

	var n int32

	err := r.db.QueryRowContext(ctx, setBalanceQuery, balance, bankID, number).Scan(&n)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
