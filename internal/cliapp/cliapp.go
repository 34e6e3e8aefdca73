// Package cliapp provides the interactive menu driver for the bank. It owns
// all user-facing text and input parsing; every business decision is
// delegated to the services.
package cliapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
)

// BankService provides bank service layer interface needed by the menu.
type BankService interface {
	OpenAccount(ctx context.Context, bank *domain.Bank, kind domain.AccountKind) (*domain.Account, error)
	GetAccount(bank *domain.Bank, number int32) (*domain.Account, error)
	ListAccounts(bank *domain.Bank) []*domain.Account
}

// AccountService provides account service layer interface needed by the menu.
type AccountService interface {
	AddTransaction(ctx context.Context, bankID int32, account *domain.Account, amount decimal.Decimal, date time.Time) (domain.Transaction, error)
	AssessInterestAndFees(ctx context.Context, bankID int32, account *domain.Account, asOf time.Time) ([]domain.Transaction, error)
	ListTransactions(account *domain.Account) []domain.Transaction
}

// App is the command-line menu loop over one bank graph.
type App struct {
	bank     *domain.Bank
	banks    BankService
	accounts AccountService
	in       *bufio.Scanner
	out      io.Writer
	selected *domain.Account
	now      func() time.Time
}

// New returns the menu app reading commands from in and printing to out.
func New(bank *domain.Bank, bs BankService, as AccountService, in io.Reader, out io.Writer) *App {
	return &App{
		bank:     bank,
		banks:    bs,
		accounts: as,
		in:       bufio.NewScanner(in),
		out:      out,
		now:      time.Now,
	}
}

// Run displays the menu and responds to choices until quit or end of input.
func (a *App) Run(ctx context.Context) {
	for {
		a.displayMenu()

		choice, ok := a.readLine()
		if !ok {
			return
		}

		switch choice {
		case "1":
			a.openAccount(ctx)
		case "2":
			a.summary()
		case "3":
			a.selectAccount()
		case "4":
			a.addTransaction(ctx)
		case "5":
			a.listTransactions()
		case "6":
			a.monthlyTriggers(ctx)
		case "7":
			return
		default:
			fmt.Fprintf(a.out, "%s is not a valid choice\n", choice)
		}
	}
}

func (a *App) displayMenu() {
	selected := "None"
	if a.selected != nil {
		selected = formatAccount(a.selected)
	}

	fmt.Fprintf(a.out, `--------------------------------
Currently selected account: %s
Enter command
1: open account
2: summary
3: select account
4: add transaction
5: list transactions
6: interest and fees
7: quit
>`, selected)
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}

	return a.in.Text(), true
}

func (a *App) openAccount(ctx context.Context) {
	fmt.Fprint(a.out, "Type of account? (checking/savings)\n>")

	kind, ok := a.readLine()
	if !ok {
		return
	}

	_, err := a.banks.OpenAccount(ctx, a.bank, domain.AccountKind(kind))
	if err != nil && !errors.Is(err, domain.ErrUnsupportedKind) {
		a.unexpected(ctx, err)
	}
}

func (a *App) summary() {
	for _, account := range a.banks.ListAccounts(a.bank) {
		fmt.Fprintln(a.out, formatAccount(account))
	}
}

func (a *App) selectAccount() {
	fmt.Fprint(a.out, "Enter account number\n>")

	line, ok := a.readLine()
	if !ok {
		return
	}

	number, err := strconv.ParseInt(line, 10, 32)
	if err != nil {
		a.selected = nil
		return
	}

	account, err := a.banks.GetAccount(a.bank, int32(number))
	if err != nil {
		a.selected = nil
		return
	}

	a.selected = account
}

func (a *App) addTransaction(ctx context.Context) {
	if a.selected == nil {
		fmt.Fprintln(a.out, "This command requires that you first select an account.")
		return
	}

	var amount decimal.Decimal

	for {
		fmt.Fprint(a.out, "Amount?\n>")

		line, ok := a.readLine()
		if !ok {
			return
		}

		parsed, err := decimal.NewFromString(line)
		if err != nil {
			fmt.Fprintln(a.out, "Please try again with a valid dollar amount.")
			continue
		}

		amount = parsed

		break
	}

	var date time.Time

	for {
		fmt.Fprint(a.out, "Date? (YYYY-MM-DD)\n>")

		line, ok := a.readLine()
		if !ok {
			return
		}

		parsed, err := time.Parse(domain.DateLayout, line)
		if err != nil {
			fmt.Fprintln(a.out, "Please try again with a valid date in the format YYYY-MM-DD.")
			continue
		}

		date = parsed

		break
	}

	if _, err := a.accounts.AddTransaction(ctx, a.bank.ID, a.selected, amount, date); err != nil {
		a.renderTransactionError(ctx, err)
	}
}

func (a *App) listTransactions() {
	if a.selected == nil {
		fmt.Fprintln(a.out, "This command requires that you first select an account.")
		return
	}

	for _, t := range a.accounts.ListTransactions(a.selected) {
		fmt.Fprintf(a.out, "%s, $%s\n", t.Date.Format(domain.DateLayout), t.Amount.StringFixed(2))
	}
}

func (a *App) monthlyTriggers(ctx context.Context) {
	if a.selected == nil {
		fmt.Fprintln(a.out, "This command requires that you first select an account.")
		return
	}

	_, err := a.accounts.AssessInterestAndFees(ctx, a.bank.ID, a.selected, a.now())
	if err == nil {
		zerolog.Ctx(ctx).Debug().Msg("triggered interest and fees")
		return
	}

	var seqErr *domain.SequenceError
	if errors.As(err, &seqErr) {
		fmt.Fprintf(a.out, "Cannot apply interest and fees again in the month of %s.\n", seqErr.Latest.Month())
		return
	}

	a.renderTransactionError(ctx, err)
}

func (a *App) renderTransactionError(ctx context.Context, err error) {
	var (
		seqErr   *domain.SequenceError
		limitErr *domain.LimitError
	)

	switch {
	case errors.Is(err, domain.ErrOverdrawn):
		fmt.Fprintln(a.out, "This transaction could not be completed due to an insufficient account balance.")
	case errors.As(err, &limitErr):
		fmt.Fprintf(a.out, "This transaction could not be completed because this account already has %d transactions in this %s.\n",
			limitErr.Limit, limitErr.Window)
	case errors.As(err, &seqErr):
		fmt.Fprintf(a.out, "New transactions must be from %s onward.\n", seqErr.Latest.Format(domain.DateLayout))
	default:
		a.unexpected(ctx, err)
	}
}

func (a *App) unexpected(ctx context.Context, err error) {
	zerolog.Ctx(ctx).Error().Err(err).Send()
	fmt.Fprintln(a.out, "Sorry! Something unexpected happened. Check the logs or contact the developer for assistance.")
}

func formatAccount(account *domain.Account) string {
	label := "Checking"
	if account.Kind == domain.Savings {
		label = "Savings"
	}

	return fmt.Sprintf("%s#%09d,\tbalance: $%s", label, account.ID, account.Balance.StringFixed(2))
}
