package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

// ReportCache stores computed reports between writes. Entries are keyed by
// generation; Invalidate moves to a new one.
type ReportCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Invalidate(ctx context.Context) error
}

// reportInvalidator is the part of ReportService that writers depend on.
type reportInvalidator interface {
	InvalidateReports(ctx context.Context)
}

// ReportService aggregates the income and expense registers. It never writes
// domain data.
type ReportService struct {
	reports repository.ReportRepository
	cache   ReportCache
	log     zerolog.Logger
}

// NewReportService creates a new ReportService. cache may be nil.
func NewReportService(reports repository.ReportRepository, cache ReportCache, log zerolog.Logger) *ReportService {
	return &ReportService{
		reports: reports,
		cache:   cache,
		log:     log.With().Str("component", "report_service").Logger(),
	}
}

// IncomeByClass totals income per class name. Classes without income are omitted.
func (s *ReportService) IncomeByClass(ctx context.Context) ([]model.ClassTotal, error) {
	return cached(ctx, s, config.CacheKey.IncomeByClassKey, func(ctx context.Context) ([]model.ClassTotal, error) {
		return s.reports.SumByClass(ctx, model.RegisterIncome)
	})
}

// ExpenseByClass totals expenses per class name. Classes without expenses are omitted.
func (s *ReportService) ExpenseByClass(ctx context.Context) ([]model.ClassTotal, error) {
	return cached(ctx, s, config.CacheKey.ExpenseByClassKey, func(ctx context.Context) ([]model.ClassTotal, error) {
		return s.reports.SumByClass(ctx, model.RegisterExpense)
	})
}

// ProfitLossByInstitute lists every institute with income, expense and
// income minus expense. Missing sides count as zero.
func (s *ReportService) ProfitLossByInstitute(ctx context.Context) ([]model.ProfitLossRow, error) {
	return cached(ctx, s, config.CacheKey.ProfitLossKey, func(ctx context.Context) ([]model.ProfitLossRow, error) {
		income, err := s.reports.SumByInstitute(ctx, model.RegisterIncome)
		if err != nil {
			return nil, fmt.Errorf("sum income: %w", err)
		}
		expense, err := s.reports.SumByInstitute(ctx, model.RegisterExpense)
		if err != nil {
			return nil, fmt.Errorf("sum expense: %w", err)
		}
		return model.MergeProfitLoss(income, expense), nil
	})
}

// Summary bundles all three reports. Grand totals are taken from the
// profit/loss rows, so unattributed register lines are not counted.
func (s *ReportService) Summary(ctx context.Context) (*model.ReportSummary, error) {
	income, err := s.IncomeByClass(ctx)
	if err != nil {
		return nil, err
	}
	expense, err := s.ExpenseByClass(ctx)
	if err != nil {
		return nil, err
	}
	profitLoss, err := s.ProfitLossByInstitute(ctx)
	if err != nil {
		return nil, err
	}

	summary := &model.ReportSummary{
		IncomeByClass:         income,
		ExpenseByClass:        expense,
		ProfitLossByInstitute: profitLoss,
	}
	for _, row := range profitLoss {
		summary.TotalIncome = summary.TotalIncome.Add(row.Income)
		summary.TotalExpense = summary.TotalExpense.Add(row.Expense)
	}
	summary.NetProfitLoss = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// InvalidateReports drops cached reports. Failures are logged only; the
// cache entries expire on their own.
func (s *ReportService) InvalidateReports(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate report cache")
	}
}

// Warm recomputes every report into the cache. It is a no-op without a cache.
func (s *ReportService) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	s.InvalidateReports(ctx)
	if _, err := s.Summary(ctx); err != nil {
		return fmt.Errorf("warm reports: %w", err)
	}
	return nil
}

// cached serves the report under keyFor(generation) from the cache,
// computing and storing it on a miss. The generation is read before
// computing, so rows that raced with a write are stored under a superseded
// key. Cache errors fall through to the computation.
func cached[T any](ctx context.Context, s *ReportService, keyFor func(int64) string, compute func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache == nil {
		return compute(ctx)
	}

	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Report cache generation read failed")
		return compute(ctx)
	}
	key := keyFor(gen)

	var rows []T
	hit, err := s.cache.Get(ctx, key, &rows)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Report cache read failed")
	}
	if hit {
		return rows, nil
	}

	rows, err = compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, rows); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("Report cache write failed")
	}
	return rows, nil
}

func invalidateReports(ctx context.Context, r reportInvalidator) {
	if r != nil {
		r.InvalidateReports(ctx)
	}
}
