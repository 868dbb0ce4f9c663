package finance

import "github.com/shopspring/decimal"

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

type Transaction struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Kind        Kind
	Category    string
	Amount      decimal.Decimal
	Description string
}

type Summary struct {
	IncomeByCategory  map[string]decimal.Decimal
	ExpenseByCategory map[string]decimal.Decimal
	TotalIncome       decimal.Decimal
	TotalExpenses     decimal.Decimal
	Net               decimal.Decimal
}
