package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale — число знаков после запятой, которое хранится без округления
// (колонки NUMERIC(20,4)).
const MoneyScale = 4

// Money — неотрицательная денежная сумма с точной десятичной арифметикой.
// Нулевое значение Money равно 0.
type Money struct {
	amount decimal.Decimal
}

// Zero возвращает нулевую сумму.
func Zero() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney создаёт сумму из decimal. Отрицательные значения и больше
// MoneyScale значащих знаков после запятой запрещены.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return Money{}, fmt.Errorf("%w: %s", ErrMoneyPrecision, amount)
	}
	return Money{amount: amount}, nil
}

// MoneyFromInt создаёт сумму из целого числа денежных единиц.
func MoneyFromInt(units int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(units))
}

// ParseMoney разбирает строковое представление суммы ("70", "19.90").
func ParseMoney(raw string) (Money, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return NewMoney(amount)
}

// MustMoney — вариант ParseMoney для констант и тестов.
func MustMoney(raw string) Money {
	m, err := ParseMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// Sum складывает суммы без потери точности.
func Sum(values ...Money) Money {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v.amount)
	}
	return Money{amount: total}
}

// Add возвращает m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Cmp сравнивает суммы: -1, 0 или 1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal сравнивает суммы по значению (70 == 70.00).
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero сообщает, что сумма равна нулю.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Decimal возвращает значение суммы.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) String() string {
	return m.amount.String()
}

// MarshalJSON сериализует сумму числом.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.String()), nil
}

// UnmarshalJSON принимает как число, так и строку.
func (m *Money) UnmarshalJSON(data []byte) error {
	var amount decimal.Decimal
	if err := amount.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := NewMoney(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value реализует driver.Valuer для колонок NUMERIC.
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan реализует sql.Scanner для колонок NUMERIC.
func (m *Money) Scan(src any) error {
	var amount decimal.Decimal
	if err := amount.Scan(src); err != nil {
		return fmt.Errorf("scan money: %w", err)
	}
	parsed, err := NewMoney(amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
