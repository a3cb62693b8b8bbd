package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a nullable two-decimal amount stored as NUMERIC(10,2) and
// rendered as a bare JSON number.
type Money struct {
	Amount decimal.Decimal
	Valid  bool
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Amount: d, Valid: true}
}

// ParseMoney accepts values like "25", "25.00" or "$25.00". Empty input is
// a valid absent amount.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return Money{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return NewMoney(d), nil
}

func (m Money) String() string {
	if !m.Valid {
		return ""
	}
	return m.Amount.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return []byte(m.Amount.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = NewMoney(d)
	return nil
}

func (m *Money) Scan(value interface{}) error {
	if value == nil {
		*m = Money{}
		return nil
	}
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoney(d)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	if !m.Valid {
		return nil, nil
	}
	return m.Amount.StringFixed(2), nil
}
