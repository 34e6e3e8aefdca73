package accountrepo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"

	"github.com/anton-mel/OOPBankApplication/internal/bankrepo"
	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/configpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
	"github.com/anton-mel/OOPBankApplication/pkg/randompkg"
)

func setupTX(t *testing.T) *sql.Tx {
	t.Helper()

	config, err := configpkg.Load("../../configs")
	if err != nil {
		t.Skipf("cannot load config: %v", err)
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Skipf("database is not available: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("db.Close() failed: %v", err)
	}

	return dbpkg.SetupTX(t, config.DBDriver, config.DBSource)
}

func TestCreate(t *testing.T) {
	tx := setupTX(t)
	ctx := context.Background()

	bank, err := bankrepo.NewRepoPGS(tx).Create(ctx)
	require.NoError(t, err)

	repo := NewRepoPGS(tx)

	account := domain.NewAccount(1, randompkg.AccountKind())
	require.NoError(t, repo.Create(ctx, bank.ID, account))

	err = repo.Create(ctx, bank.ID+1_000_000, domain.NewAccount(1, domain.Savings))
	require.ErrorIs(t, err, domain.ErrBankNotFound)
}

func TestSetBalance(t *testing.T) {
	tx := setupTX(t)
	ctx := context.Background()

	bank, err := bankrepo.NewRepoPGS(tx).Create(ctx)
	require.NoError(t, err)

	repo := NewRepoPGS(tx)

	account := domain.NewAccount(1, domain.Checking)
	require.NoError(t, repo.Create(ctx, bank.ID, account))

	balance := randompkg.AmountBetween(100, 1_000)
	require.NoError(t, repo.SetBalance(ctx, bank.ID, account.ID, balance))

	var stored decimal.Decimal

	err = tx.QueryRowContext(ctx,
		"SELECT balance FROM accounts WHERE bank_id = $1 AND number = $2",
		bank.ID, account.ID,
	).Scan(&stored)
	require.NoError(t, err)
	require.True(t, stored.Equal(balance))

	err = repo.SetBalance(ctx, bank.ID, 99, balance)
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}
