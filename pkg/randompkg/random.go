// Package randompkg provides functionality for generating random application
// test data.
package randompkg

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/anton-mel/OOPBankApplication/internal/domain"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// Float64 is a shortcut for generating a random float between 0 and 1 using crypto/rand.
func Float64() float64 {
	return float64(Intn(1<<32)) / (1 << 32)
}

// String generates a random string of length n.
func String(n int) string {
	var sb strings.Builder

	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// AmountBetween generates a random money amount between min and max, exact
// to the cent.
func AmountBetween(min, max float64) decimal.Decimal {
	numInRange := min + Float64()*(max-min)
	cents := math.Floor(numInRange * 100)

	return decimal.New(int64(cents), -2)
}

// Date generates a random calendar date within the given year.
func Date(year int) time.Time {
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, int(Intn(365)))
}

// AccountKind picks one of the supported account kinds.
func AccountKind() domain.AccountKind {
	kinds := []domain.AccountKind{domain.Savings, domain.Checking}
	return kinds[Intn(len(kinds))]
}
