// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transactions (bank_id, account_number, amount, date, kind)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_number, amount, date, kind
`

// Create persists the transaction and returns it with its assigned row id.
func (r *RepoPGS) Create(ctx context.Context, bankID int32, transaction domain.Transaction) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		bankID,
		transaction.AccountID,
		transaction.Amount,
		transaction.Date,
		transaction.Kind,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Date,
		&t.Kind,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.ErrInternal
	}

	t.Date = domain.DateOnly(t.Date)

	return t, nil
}

const listQuery = `
SELECT id, account_number, amount, date, kind FROM transactions
WHERE bank_id = $1 AND account_number = $2
ORDER BY id
`

// List returns the ledger of the given account in insertion order.
func (r *RepoPGS) List(ctx context.Context, bankID, accountNumber int32) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, bankID, accountNumber)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.AccountID,
			&t.Amount,
			&t.Date,
			&t.Kind,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		t.Date = domain.DateOnly(t.Date)

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
