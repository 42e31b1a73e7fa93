package entity

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents) of a currency.
//
// Amounts use two decimal places regardless of currency.
type Money struct {
	Amount   int64  `yaml:"amount" json:"amount"`
	Currency string `yaml:"currency" json:"currency"`
}

// ParseMoney parses "20.00 USD", "20 USD" or "-3.5 EUR".
func ParseMoney(s string) (Money, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Money{}, fmt.Errorf("parse money %q: want \"<amount> <currency>\"", s)
	}

	number, currency := fields[0], strings.ToUpper(fields[1])
	negative := strings.HasPrefix(number, "-")
	number = strings.TrimPrefix(number, "-")

	whole, frac, _ := strings.Cut(number, ".")
	if len(frac) > 2 {
		return Money{}, fmt.Errorf("parse money %q: more than two decimal places", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}

	amount := units*100 + cents
	if negative {
		amount = -amount
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// String renders the amount with two decimals followed by the currency.
func (m Money) String() string {
	sign := ""
	amount := m.Amount
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amount/100, amount%100, m.Currency)
}

// Compare orders by currency, then by amount.
func (m Money) Compare(other Money) int {
	if c := cmp.Compare(m.Currency, other.Currency); c != 0 {
		return c
	}
	return cmp.Compare(m.Amount, other.Amount)
}

// Add sums two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add %s to %s: no currency conversion", other.Currency, m.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}
