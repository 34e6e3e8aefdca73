// Package bankrepo manages repository layer of banks, including loading the
// persisted bank graph on startup.
package bankrepo

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

// RepoPGS facilitates bank repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns bank RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO banks DEFAULT VALUES
RETURNING id
`

// Create persists a fresh empty bank and returns it.
func (r *RepoPGS) Create(ctx context.Context) (*domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	var b domain.Bank

	if err := r.db.QueryRowContext(ctx, createQuery).Scan(&b.ID); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return &b, nil
}

const getFirstQuery = `
SELECT id FROM banks
ORDER BY id
LIMIT 1
`

const listAccountsQuery = `
SELECT number, kind, balance FROM accounts
WHERE bank_id = $1
ORDER BY number
`

const listTransactionsQuery = `
SELECT id, account_number, amount, date, kind FROM transactions
WHERE bank_id = $1
ORDER BY account_number, id
`

// Get loads the first persisted bank with its full account/transaction
// graph. It returns domain.ErrBankNotFound on a first run and
// domain.ErrInconsistentBalance when a stored balance does not match the
// stored ledger.
func (r *RepoPGS) Get(ctx context.Context) (*domain.Bank, error) {
	l := zerolog.Ctx(ctx)

	var b domain.Bank

	err := r.db.QueryRowContext(ctx, getFirstQuery).Scan(&b.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrBankNotFound
		}

		l.Error().Err(err).Send()

		return nil, errorspkg.ErrInternal
	}

	if err := r.loadAccounts(ctx, &b); err != nil {
		return nil, err
	}

	if err := r.loadTransactions(ctx, &b); err != nil {
		return nil, err
	}

	for _, a := range b.Accounts {
		if !a.Balance.Equal(a.SumTransactions()) {
			l.Error().Int32("account", a.ID).Msg("stored balance diverges from ledger")
			return nil, domain.ErrInconsistentBalance
		}
	}

	return &b, nil
}

func (r *RepoPGS) loadAccounts(ctx context.Context, b *domain.Bank) error {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listAccountsQuery, b.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Kind, &a.Balance); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		b.Accounts = append(b.Accounts, &a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

func (r *RepoPGS) loadTransactions(ctx context.Context, b *domain.Bank) error {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listTransactionsQuery, b.ID)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Date, &t.Kind); err != nil {
			l.Error().Err(err).Send()
			return errorspkg.ErrInternal
		}

		t.Date = domain.DateOnly(t.Date)

		a := b.GetAccount(t.AccountID)
		if a == nil {
			l.Error().Int32("account", t.AccountID).Msg("transaction references unknown account")
			return errorspkg.ErrInternal
		}

		a.Transactions = append(a.Transactions, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}
