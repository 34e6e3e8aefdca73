package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

const testBankID = int32(1)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddTransaction(t *testing.T) {
	jan10 := date(2024, time.January, 10)

	testCases := []struct {
		name          string
		account       func() *domain.Account
		amount        string
		buildStubs    func(tr *MockTransactionRepo, ar *MockAccountRepo)
		checkResponse func(t *testing.T, account *domain.Account, got domain.Transaction, err error)
	}{
		{
			name: "OK",
			account: func() *domain.Account {
				return domain.NewAccount(1, domain.Checking)
			},
			amount: "100.00",
			buildStubs: func(tr *MockTransactionRepo, ar *MockAccountRepo) {
				created := domain.Transaction{
					ID:        42,
					AccountID: 1,
					Amount:    dec("100.00"),
					Date:      jan10,
					Kind:      domain.KindDeposit,
				}
				tr.EXPECT().
					Create(gomock.Any(), gomock.Eq(testBankID), gomock.Any()).
					Times(1).
					Return(created, nil)
				ar.EXPECT().
					SetBalance(gomock.Any(), gomock.Eq(testBankID), gomock.Eq(int32(1)), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, account *domain.Account, got domain.Transaction, err error) {
				require.NoError(t, err)
				require.Equal(t, int64(42), got.ID)
				require.Equal(t, int64(42), account.Transactions[0].ID)
				require.True(t, account.Balance.Equal(dec("100.00")))
			},
		},
		{
			name: "RuleFailureSkipsPersistence",
			account: func() *domain.Account {
				return domain.NewAccount(1, domain.Savings)
			},
			amount: "-75.00",
			buildStubs: func(tr *MockTransactionRepo, ar *MockAccountRepo) {
				tr.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				ar.EXPECT().SetBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, account *domain.Account, got domain.Transaction, err error) {
				require.ErrorIs(t, err, domain.ErrOverdrawn)
				require.Empty(t, account.Transactions)
			},
		},
		{
			name: "CreateTransactionError",
			account: func() *domain.Account {
				return domain.NewAccount(1, domain.Checking)
			},
			amount: "10",
			buildStubs: func(tr *MockTransactionRepo, ar *MockAccountRepo) {
				tr.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transaction{}, errorspkg.ErrInternal)
				ar.EXPECT().SetBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, account *domain.Account, got domain.Transaction, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "SetBalanceError",
			account: func() *domain.Account {
				return domain.NewAccount(1, domain.Checking)
			},
			amount: "10",
			buildStubs: func(tr *MockTransactionRepo, ar *MockAccountRepo) {
				tr.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transaction{ID: 1, AccountID: 1, Amount: dec("10"), Date: jan10, Kind: domain.KindDeposit}, nil)
				ar.EXPECT().
					SetBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, account *domain.Account, got domain.Transaction, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			transactionRepo := NewMockTransactionRepo(ctrl)
			accountRepo := NewMockAccountRepo(ctrl)
			tc.buildStubs(transactionRepo, accountRepo)

			service := New(transactionRepo, accountRepo)
			account := tc.account()

			got, err := service.AddTransaction(context.Background(), testBankID, account, dec(tc.amount), jan10)
			tc.checkResponse(t, account, got, err)
		})
	}
}

func TestAssessInterestAndFees(t *testing.T) {
	jan10 := date(2024, time.January, 10)
	jan31 := date(2024, time.January, 31)

	t.Run("CommitsEveryPosting", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		transactionRepo := NewMockTransactionRepo(ctrl)
		accountRepo := NewMockAccountRepo(ctrl)
		service := New(transactionRepo, accountRepo)

		account := domain.NewAccount(1, domain.Checking)

		transactionRepo.EXPECT().
			Create(gomock.Any(), gomock.Eq(testBankID), gomock.Any()).
			Times(1).
			Return(domain.Transaction{ID: 1, AccountID: 1, Amount: dec("50.00"), Date: jan10, Kind: domain.KindDeposit}, nil)
		accountRepo.EXPECT().
			SetBalance(gomock.Any(), gomock.Eq(testBankID), gomock.Eq(int32(1)), gomock.Any()).
			Times(3).
			Return(nil)

		_, err := service.AddTransaction(context.Background(), testBankID, account, dec("50.00"), jan10)
		require.NoError(t, err)

		// interest 0.04 then low-balance fee -5.44, both dated Jan 31
		transactionRepo.EXPECT().
			Create(gomock.Any(), gomock.Eq(testBankID), gomock.Any()).
			Times(1).
			Return(domain.Transaction{ID: 2, AccountID: 1, Amount: dec("0.04"), Date: jan31, Kind: domain.KindInterest}, nil)
		transactionRepo.EXPECT().
			Create(gomock.Any(), gomock.Eq(testBankID), gomock.Any()).
			Times(1).
			Return(domain.Transaction{ID: 3, AccountID: 1, Amount: dec("-5.44"), Date: jan31, Kind: domain.KindFee}, nil)

		posted, err := service.AssessInterestAndFees(context.Background(), testBankID, account, jan10)
		require.NoError(t, err)
		require.Len(t, posted, 2)
		require.True(t, account.Balance.Equal(dec("44.60")))
		require.Equal(t, int64(2), account.Transactions[1].ID)
		require.Equal(t, int64(3), account.Transactions[2].ID)
	})

	t.Run("GuardFailureSkipsPersistence", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		transactionRepo := NewMockTransactionRepo(ctrl)
		accountRepo := NewMockAccountRepo(ctrl)
		service := New(transactionRepo, accountRepo)

		account := domain.NewAccount(1, domain.Savings)
		_, err := account.AssessInterestAndFees(jan10)
		require.NoError(t, err)

		balance := account.Balance

		transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		accountRepo.EXPECT().SetBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		var seqErr *domain.SequenceError

		_, err = service.AssessInterestAndFees(context.Background(), testBankID, account, jan10)
		require.ErrorAs(t, err, &seqErr)
		require.True(t, account.Balance.Equal(balance))
	})
}

func TestListTransactions(t *testing.T) {
	t.Parallel()

	account := domain.NewAccount(1, domain.Checking)
	_, err := account.AddTransaction(dec("5"), date(2024, time.May, 1))
	require.NoError(t, err)

	service := New(nil, nil)

	got := service.ListTransactions(account)
	require.Len(t, got, 1)

	// mutating the copy must not touch the ledger
	got[0].Amount = dec("999")
	require.True(t, account.Transactions[0].Amount.Equal(dec("5")))
}
