package bankservice

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
	"github.com/anton-mel/OOPBankApplication/pkg/errorspkg"
)

func TestLoadOrCreate(t *testing.T) {
	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, bank *domain.Bank, err error)
	}{
		{
			name: "ExistingBank",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any()).Times(1).Return(&domain.Bank{ID: 7}, nil)
				repo.EXPECT().Create(gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, err error) {
				require.NoError(t, err)
				require.Equal(t, int32(7), bank.ID)
			},
		},
		{
			name: "FirstRunCreates",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any()).Times(1).Return(nil, domain.ErrBankNotFound)
				repo.EXPECT().Create(gomock.Any()).Times(1).Return(&domain.Bank{ID: 1}, nil)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, err error) {
				require.NoError(t, err)
				require.Equal(t, int32(1), bank.ID)
			},
		},
		{
			name: "LoadError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any()).Times(1).Return(nil, errorspkg.ErrInternal)
				repo.EXPECT().Create(gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
				require.Nil(t, bank)
			},
		},
		{
			name: "InconsistentState",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any()).Times(1).Return(nil, domain.ErrInconsistentBalance)
				repo.EXPECT().Create(gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, err error) {
				require.ErrorIs(t, err, domain.ErrInconsistentBalance)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			bank, err := New(repo, nil).LoadOrCreate(context.Background())
			tc.checkResponse(t, bank, err)
		})
	}
}

func TestOpenAccount(t *testing.T) {
	testCases := []struct {
		name          string
		kind          domain.AccountKind
		buildStubs    func(accountRepo *MockAccountRepo)
		checkResponse func(t *testing.T, bank *domain.Bank, account *domain.Account, err error)
	}{
		{
			name: "OK",
			kind: domain.Savings,
			buildStubs: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Eq(int32(1)), gomock.Any()).
					Times(1).
					Return(nil)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, account *domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, int32(1), account.ID)
				require.Equal(t, domain.Savings, account.Kind)
				require.Len(t, bank.Accounts, 1)
			},
		},
		{
			name: "UnsupportedKind",
			kind: domain.AccountKind("brokerage"),
			buildStubs: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, account *domain.Account, err error) {
				require.ErrorIs(t, err, domain.ErrUnsupportedKind)
				require.Empty(t, bank.Accounts)
			},
		},
		{
			name: "PersistError",
			kind: domain.Checking,
			buildStubs: func(accountRepo *MockAccountRepo) {
				accountRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(errorspkg.ErrInternal)
			},
			checkResponse: func(t *testing.T, bank *domain.Bank, account *domain.Account, err error) {
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

			accountRepo := NewMockAccountRepo(ctrl)
			tc.buildStubs(accountRepo)

			bank := &domain.Bank{ID: 1}

			account, err := New(nil, accountRepo).OpenAccount(context.Background(), bank, tc.kind)
			tc.checkResponse(t, bank, account, err)
		})
	}
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	bank := &domain.Bank{ID: 1}
	bank.AddAccount(domain.Savings)
	want := bank.AddAccount(domain.Checking)

	service := New(nil, nil)

	got, err := service.GetAccount(bank, 2)
	require.NoError(t, err)
	require.Same(t, want, got)

	_, err = service.GetAccount(bank, 99)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	t.Parallel()

	bank := &domain.Bank{ID: 1}
	bank.AddAccount(domain.Savings)
	bank.AddAccount(domain.Checking)

	accounts := New(nil, nil).ListAccounts(bank)
	require.Len(t, accounts, 2)
	require.Equal(t, int32(1), accounts[0].ID)
	require.Equal(t, int32(2), accounts[1].ID)
}
