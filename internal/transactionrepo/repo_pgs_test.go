package transactionrepo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"

	"github.com/anton-mel/OOPBankApplication/internal/accountrepo"
	"github.com/anton-mel/OOPBankApplication/internal/bankrepo"
	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/configpkg"
	"github.com/anton-mel/OOPBankApplication/pkg/dbpkg"
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

func TestCreateAndList(t *testing.T) {
	tx := setupTX(t)
	ctx := context.Background()

	bank, err := bankrepo.NewRepoPGS(tx).Create(ctx)
	require.NoError(t, err)

	account := domain.NewAccount(1, randompkg.AccountKind())
	require.NoError(t, accountrepo.NewRepoPGS(tx).Create(ctx, bank.ID, account))

	repo := NewRepoPGS(tx)

	want := []domain.Transaction{}

	for i := 0; i < 3; i++ {
		arg := domain.Transaction{
			AccountID: account.ID,
			Amount:    randompkg.AmountBetween(10, 1_000),
			Date:      randompkg.Date(2024),
			Kind:      domain.KindDeposit,
		}

		created, err := repo.Create(ctx, bank.ID, arg)
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, arg.AccountID, created.AccountID)
		require.True(t, created.Amount.Equal(arg.Amount))
		require.True(t, created.Date.Equal(arg.Date))
		require.Equal(t, arg.Kind, created.Kind)

		want = append(want, created)
	}

	got, err := repo.List(ctx, bank.ID, account.ID)
	require.NoError(t, err)
	require.Len(t, got, len(want))

	for i := range want {
		require.Equal(t, want[i].ID, got[i].ID)
		require.True(t, got[i].Amount.Equal(want[i].Amount))
		require.True(t, got[i].Date.Equal(want[i].Date))
		require.Equal(t, want[i].Kind, got[i].Kind)
	}
}

func TestListEmpty(t *testing.T) {
	tx := setupTX(t)
	ctx := context.Background()

	bank, err := bankrepo.NewRepoPGS(tx).Create(ctx)
	require.NoError(t, err)

	got, err := NewRepoPGS(tx).List(ctx, bank.ID, 1)
	require.NoError(t, err)
	require.Empty(t, got)
}
