package domain

// Bank is the aggregate root owning the account collection in creation
// order. Account numbers form a strictly increasing sequence starting at 1,
// derived from the current count rather than a stored counter.
type Bank struct {
	ID       int32
	Accounts []*Account
}

// AddAccount opens an account of the given kind and assigns it the next
// sequential number. An unknown kind is a no-op returning nil; callers
// wanting a hard failure validate the kind themselves.
func (b *Bank) AddAccount(kind AccountKind) *Account {
	if _, ok := PolicyFor(kind); !ok {
		return nil
	}

	a := NewAccount(int32(len(b.Accounts))+1, kind)
	b.Accounts = append(b.Accounts, a)

	return a
}

// GetAccount returns the account with the given number, or nil when absent.
func (b *Bank) GetAccount(number int32) *Account {
	for _, a := range b.Accounts {
		if a.ID == number {
			return a
		}
	}

	return nil
}
