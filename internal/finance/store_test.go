package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAddThenList_ReturnsExactFields(t *testing.T) {
	st := newTestStore(t)

	added, err := st.Add(KindExpense, "Food", dec("42.50"), "groceries")
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	txs, err := st.List(10, Filter{})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, KindExpense, txs[0].Kind)
	assert.Equal(t, "Food", txs[0].Category)
	assert.True(t, txs[0].Amount.Equal(dec("42.50")))
	assert.Equal(t, "groceries", txs[0].Description)
	assert.Equal(t, added.Date, txs[0].Date)
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Add(Kind("transfer"), "Misc", dec("1"), "")
	assert.ErrorIs(t, err, ErrInvalidKind)

	_, err = st.Add(KindIncome, "Salary", dec("0"), "")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = st.Add(KindIncome, "Salary", dec("-3"), "")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)

	_, err = st.Add(KindIncome, "", dec("3"), "")
	assert.ErrorIs(t, err, ErrEmptyCategory)

	// Nothing was persisted by the rejected adds.
	txs, err := st.List(10, Filter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSummarize_GroupsByKindAndCategory(t *testing.T) {
	st := newTestStore(t)

	mustAdd := func(kind Kind, cat, amt string) {
		_, err := st.Add(kind, cat, dec(amt), "")
		require.NoError(t, err)
	}
	mustAdd(KindIncome, "Salary", "3000")
	mustAdd(KindIncome, "Freelance", "500")
	mustAdd(KindExpense, "Rent", "1000")
	mustAdd(KindExpense, "Food", "300")
	mustAdd(KindExpense, "Food", "55.25")

	sum, err := st.Summarize(Filter{})
	require.NoError(t, err)

	assert.True(t, sum.TotalIncome.Equal(dec("3500")))
	assert.True(t, sum.TotalExpenses.Equal(dec("1355.25")))
	assert.True(t, sum.Net.Equal(dec("2144.75")))
	assert.True(t, sum.IncomeByCategory["Salary"].Equal(dec("3000")))
	assert.True(t, sum.ExpenseByCategory["Food"].Equal(dec("355.25")))
}

func TestSummarize_EmptyIsZero(t *testing.T) {
	st := newTestStore(t)

	sum, err := st.Summarize(Filter{})
	require.NoError(t, err)

	assert.True(t, sum.TotalIncome.IsZero())
	assert.True(t, sum.TotalExpenses.IsZero())
	assert.True(t, sum.Net.IsZero())
	assert.Empty(t, sum.IncomeByCategory)
	assert.Empty(t, sum.ExpenseByCategory)
}

func TestList_CategoryFilterAndLimit(t *testing.T) {
	st := newTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := st.Add(KindExpense, "Food", dec("10"), "")
		require.NoError(t, err)
	}
	_, err := st.Add(KindExpense, "Rent", dec("900"), "")
	require.NoError(t, err)

	food, err := st.List(3, Filter{Category: "Food"})
	require.NoError(t, err)
	assert.Len(t, food, 3)
	for _, tx := range food {
		assert.Equal(t, "Food", tx.Category)
	}

	rent, err := st.List(10, Filter{Category: "Rent"})
	require.NoError(t, err)
	assert.Len(t, rent, 1)
}

func TestDelete(t *testing.T) {
	st := newTestStore(t)

	added, err := st.Add(KindExpense, "Food", dec("10"), "")
	require.NoError(t, err)

	require.NoError(t, st.Delete(added.ID))
	assert.ErrorIs(t, st.Delete(added.ID), ErrNotFound)

	txs, err := st.List(10, Filter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestSummarize_MonthFilter(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Add(KindExpense, "Food", dec("10"), "")
	require.NoError(t, err)

	// The row is dated today, so a month prefix from the far past matches nothing.
	sum, err := st.Summarize(Filter{Month: "1999-01"})
	require.NoError(t, err)
	assert.True(t, sum.TotalExpenses.IsZero())
}
