// Package finance persists income and expense transactions in a local
// SQLite database and aggregates them into summaries.
package finance

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

var (
	ErrInvalidKind       = errors.New("finance: type must be income or expense")
	ErrNonPositiveAmount = errors.New("finance: amount must be greater than zero")
	ErrEmptyCategory     = errors.New("finance: category cannot be empty")
	ErrNotFound          = errors.New("finance: transaction not found")
)

type Store struct {
	db *sql.DB
}

func New(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "finance.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transactions (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		date        TEXT NOT NULL,
		type        TEXT NOT NULL,
		category    TEXT NOT NULL,
		amount      TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add validates and persists one transaction dated today. Amounts are kept
// as exact decimal text, never floats.
func (s *Store) Add(kind Kind, category string, amount decimal.Decimal, description string) (*Transaction, error) {
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if category == "" {
		return nil, ErrEmptyCategory
	}

	date := time.Now().Format("2006-01-02")
	res, err := s.db.Exec(
		"INSERT INTO transactions (date, type, category, amount, description) VALUES (?, ?, ?, ?, ?)",
		date, string(kind), category, amount.String(), description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Transaction{
		ID: id, Date: date, Kind: kind,
		Category: category, Amount: amount, Description: description,
	}, nil
}

// Filter narrows List and Summarize. Month is a YYYY-MM prefix; empty
// fields match everything.
type Filter struct {
	Month    string
	Category string
}

func (f Filter) where() (string, []any) {
	clause := ""
	var args []any
	if f.Month != "" {
		clause += " AND date LIKE ?"
		args = append(args, f.Month+"%")
	}
	if f.Category != "" {
		clause += " AND category = ?"
		args = append(args, f.Category)
	}
	return clause, args
}

func (s *Store) List(limit int, f Filter) ([]Transaction, error) {
	if limit <= 0 {
		limit = 10
	}
	clause, args := f.where()
	args = append(args, limit)

	rows, err := s.db.Query(
		`SELECT id, date, type, category, amount, description
		 FROM transactions WHERE 1=1`+clause+`
		 ORDER BY date DESC, id DESC LIMIT ?`, args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func (s *Store) Delete(id int64) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Summarize totals amounts grouped by type and category. An empty table
// yields a zero summary, not an error.
func (s *Store) Summarize(f Filter) (*Summary, error) {
	clause, args := f.where()
	rows, err := s.db.Query(
		"SELECT type, category, amount FROM transactions WHERE 1=1"+clause, args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sum := &Summary{
		IncomeByCategory:  map[string]decimal.Decimal{},
		ExpenseByCategory: map[string]decimal.Decimal{},
	}
	for rows.Next() {
		var kind, category, amountStr string
		if err := rows.Scan(&kind, &category, &amountStr); err != nil {
			return nil, err
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
		}
		switch Kind(kind) {
		case KindIncome:
			sum.IncomeByCategory[category] = sum.IncomeByCategory[category].Add(amount)
			sum.TotalIncome = sum.TotalIncome.Add(amount)
		case KindExpense:
			sum.ExpenseByCategory[category] = sum.ExpenseByCategory[category].Add(amount)
			sum.TotalExpenses = sum.TotalExpenses.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sum.Net = sum.TotalIncome.Sub(sum.TotalExpenses)
	return sum, nil
}

func scanTransaction(rows *sql.Rows) (*Transaction, error) {
	var tx Transaction
	var kind, amountStr string
	if err := rows.Scan(&tx.ID, &tx.Date, &kind, &tx.Category, &amountStr, &tx.Description); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amountStr, err)
	}
	tx.Kind = Kind(kind)
	tx.Amount = amount
	return &tx, nil
}
