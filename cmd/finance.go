package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"toolbelt/internal/chart"
	"toolbelt/internal/config"
	"toolbelt/internal/finance"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(financeCmd)
}

var financeCmd = &cobra.Command{
	Use:   "finance",
	Short: "Track income and expenses in a local SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		st, err := finance.New(cfg.DataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		for {
			fmt.Println("\n════════ FINANCE TRACKER ════════")
			fmt.Println("1. Add income")
			fmt.Println("2. Add expense")
			fmt.Println("3. Recent transactions")
			fmt.Println("4. Summary")
			fmt.Println("5. Expense chart")
			fmt.Println("6. Delete transaction")
			fmt.Println("7. Exit")

			switch readLine("\nChoice (1-7): ") {
			case "1":
				financeAdd(st, finance.KindIncome)
			case "2":
				financeAdd(st, finance.KindExpense)
			case "3":
				financeList(st)
			case "4":
				financeSummary(st)
			case "5":
				financeChart(st)
			case "6":
				financeDelete(st)
			case "7":
				fmt.Println("Goodbye! Your data is saved in finance.db")
				return nil
			default:
				fmt.Println("Invalid choice, try again.")
			}
		}
	},
}

// financeAdd re-prompts on invalid input; nothing is persisted until every
// field validates.
func financeAdd(st *finance.Store, kind finance.Kind) {
	var category string
	for {
		category = readLine("Category: ")
		if category != "" {
			break
		}
		fmt.Println("Category cannot be empty.")
	}

	var amount decimal.Decimal
	for {
		raw := readLine("Amount: $")
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			fmt.Println("Not a number, try again.")
			continue
		}
		if !parsed.IsPositive() {
			fmt.Println("Amount must be greater than zero.")
			continue
		}
		amount = parsed
		break
	}

	description := readLine("Description (optional): ")

	tx, err := st.Add(kind, category, amount, description)
	if err != nil {
		fmt.Printf("Could not save transaction: %v\n", err)
		return
	}
	fmt.Printf("Saved %s of $%s to %s (id %d)\n", tx.Kind, tx.Amount.StringFixed(2), tx.Category, tx.ID)
}

func financeList(st *finance.Store) {
	limit := 10
	if raw := readLine("How many to show? (default 10): "); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	f := finance.Filter{
		Month:    readLine("Month filter YYYY-MM (blank for all): "),
		Category: readLine("Category filter (blank for all): "),
	}

	txs, err := st.List(limit, f)
	if err != nil {
		fmt.Printf("Query failed: %v\n", err)
		return
	}
	if len(txs) == 0 {
		fmt.Println("No transactions yet.")
		return
	}

	fmt.Printf("\n%-5s %-12s %-9s %-16s %-12s %s\n", "ID", "DATE", "TYPE", "CATEGORY", "AMOUNT", "DESCRIPTION")
	fmt.Println("─────────────────────────────────────────────────────────────────────")
	for _, tx := range txs {
		sign := "+"
		if tx.Kind == finance.KindExpense {
			sign = "-"
		}
		fmt.Printf("%-5d %-12s %-9s %-16s %s$%-10s %s\n",
			tx.ID, tx.Date, tx.Kind, tx.Category, sign, tx.Amount.StringFixed(2), tx.Description)
	}
}

func financeSummary(st *finance.Store) *finance.Summary {
	month := readLine("Month filter YYYY-MM (blank for all): ")

	sum, err := st.Summarize(finance.Filter{Month: month})
	if err != nil {
		fmt.Printf("Query failed: %v\n", err)
		return nil
	}

	fmt.Println("\n════════ FINANCIAL SUMMARY ════════")
	fmt.Printf("Total income:   $%s\n", sum.TotalIncome.StringFixed(2))
	fmt.Printf("Total expenses: $%s\n", sum.TotalExpenses.StringFixed(2))
	fmt.Printf("Net:            $%s\n", sum.Net.StringFixed(2))

	if len(sum.IncomeByCategory) > 0 {
		fmt.Println("\nIncome by category:")
		for cat, amt := range sum.IncomeByCategory {
			fmt.Printf("  %-16s $%s\n", cat, amt.StringFixed(2))
		}
	}
	if len(sum.ExpenseByCategory) > 0 {
		fmt.Println("\nExpenses by category:")
		for cat, amt := range sum.ExpenseByCategory {
			fmt.Printf("  %-16s $%s\n", cat, amt.StringFixed(2))
		}
	}
	return sum
}

func financeChart(st *finance.Store) {
	sum := financeSummary(st)
	if sum == nil {
		return
	}
	if len(sum.ExpenseByCategory) == 0 {
		fmt.Println("No expense data to chart.")
		return
	}

	path := readLine("Chart path (default expense_breakdown.png): ")
	if path == "" {
		path = "expense_breakdown.png"
	}

	items := make([]chart.Item, 0, len(sum.ExpenseByCategory))
	for cat, amt := range sum.ExpenseByCategory {
		f, _ := amt.Float64()
		items = append(items, chart.Item{Label: cat, Value: f})
	}
	if err := chart.Pie(path, "Expenses by category", items); err != nil {
		fmt.Printf("Chart failed: %v\n", err)
		return
	}
	fmt.Printf("Chart written to %s\n", path)
}

func financeDelete(st *finance.Store) {
	raw := readLine("Transaction id to delete: ")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Println("Not a valid id.")
		return
	}
	if err := st.Delete(id); err != nil {
		if errors.Is(err, finance.ErrNotFound) {
			fmt.Printf("No transaction with id %d.\n", id)
		} else {
			fmt.Printf("Delete failed: %v\n", err)
		}
		return
	}
	fmt.Printf("Transaction %d deleted.\n", id)
}
