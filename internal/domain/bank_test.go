package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddAccount(t *testing.T) {
	t.Parallel()

	b := &Bank{}

	first := b.AddAccount(Savings)
	second := b.AddAccount(Checking)
	third := b.AddAccount(Savings)

	require.Equal(t, int32(1), first.ID)
	require.Equal(t, int32(2), second.ID)
	require.Equal(t, int32(3), third.ID)
	require.Equal(t, Checking, second.Kind)
	require.Len(t, b.Accounts, 3)
}

func TestAddAccountUnknownKind(t *testing.T) {
	t.Parallel()

	b := &Bank{}
	b.AddAccount(Savings)

	require.Nil(t, b.AddAccount(AccountKind("money market")))
	require.Len(t, b.Accounts, 1)
}

func TestGetAccount(t *testing.T) {
	t.Parallel()

	b := &Bank{}
	b.AddAccount(Savings)
	want := b.AddAccount(Checking)
	b.AddAccount(Savings)

	require.Same(t, want, b.GetAccount(2))
	require.Nil(t, b.GetAccount(99))
}
