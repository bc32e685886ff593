package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ReportGenerationKey holds the counter bumped on every report invalidation.
// Report keys embed it, so rows computed before a write land under a
// generation nobody reads any more.
func (r *CacheKeyStruct) ReportGenerationKey() string {
	return "report:generation"
}

// ReportKey returns the cache key for a named report in generation gen
func (r *CacheKeyStruct) ReportKey(gen int64, report string) string {
	return fmt.Sprintf("report:%d:%s", gen, report)
}

// IncomeByClassKey returns the cache key for the class-wise income statement
func (r *CacheKeyStruct) IncomeByClassKey(gen int64) string {
	return r.ReportKey(gen, "income_by_class")
}

// ExpenseByClassKey returns the cache key for the class-wise expense statement
func (r *CacheKeyStruct) ExpenseByClassKey(gen int64) string {
	return r.ReportKey(gen, "expense_by_class")
}

// ProfitLossKey returns the cache key for the institute-wise profit/loss statement
func (r *CacheKeyStruct) ProfitLossKey(gen int64) string {
	return r.ReportKey(gen, "profit_loss_by_institute")
}

// ReportKeys lists every report cache key of generation gen.
func (r *CacheKeyStruct) ReportKeys(gen int64) []string {
	return []string{
		r.IncomeByClassKey(gen),
		r.ExpenseByClassKey(gen),
		r.ProfitLossKey(gen),
	}
}

var CacheKey = NewCacheKeyStruct()
