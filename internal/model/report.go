package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ClassTotal is a register sum grouped by class name.
type ClassTotal struct {
	ClassName string          `json:"class_name"`
	Total     decimal.Decimal `json:"total"`
}

// InstituteTotal is a register sum grouped by institute name.
type InstituteTotal struct {
	InstituteName string          `json:"institute_name"`
	Total         decimal.Decimal `json:"total"`
}

// ProfitLossRow is one line of the profit/loss report.
type ProfitLossRow struct {
	InstituteName string          `json:"institute_name"`
	Income        decimal.Decimal `json:"income"`
	Expense       decimal.Decimal `json:"expense"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
}

// ReportSummary bundles every report with grand totals.
type ReportSummary struct {
	IncomeByClass         []ClassTotal    `json:"income_by_class"`
	ExpenseByClass        []ClassTotal    `json:"expense_by_class"`
	ProfitLossByInstitute []ProfitLossRow `json:"profit_loss_by_institute"`
	TotalIncome           decimal.Decimal `json:"total_income"`
	TotalExpense          decimal.Decimal `json:"total_expense"`
	NetProfitLoss         decimal.Decimal `json:"net_profit_loss"`
}

// MergeProfitLoss joins income and expense totals on institute name. A name
// present on only one side gets zero for the other. Rows are ordered by name.
func MergeProfitLoss(income, expense []InstituteTotal) []ProfitLossRow {
	byName := make(map[string]*ProfitLossRow, len(income)+len(expense))
	row := func(name string) *ProfitLossRow {
		r, ok := byName[name]
		if !ok {
			r = &ProfitLossRow{InstituteName: name, Income: decimal.Zero, Expense: decimal.Zero}
			byName[name] = r
		}
		return r
	}
	for _, t := range income {
		r := row(t.InstituteName)
		r.Income = r.Income.Add(t.Total)
	}
	for _, t := range expense {
		r := row(t.InstituteName)
		r.Expense = r.Expense.Add(t.Total)
	}

	rows := make([]ProfitLossRow, 0, len(byName))
	for _, r := range byName {
		r.ProfitLoss = r.Income.Sub(r.Expense)
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].InstituteName < rows[j].InstituteName })
	return rows
}

// SumClassTotals adds up the totals of a by-class report.
func SumClassTotals(rows []ClassTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Total)
	}
	return sum
}
