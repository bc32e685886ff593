package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

func TestReportsMathIncomeWithoutExpenses(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := env.institute(t, "Alpha", 500)
	env.institute(t, "Beta", 300)
	math := env.class(t, "Math")
	env.class(t, "Physics")

	_, err := env.registers.RecordEntry(ctx, model.RegisterIncome, &model.RegisterRequest{
		Date:        date(2024, time.March, 1),
		Amount:      decimal.NewFromInt(1000),
		InstituteID: intPtr(alpha.ID),
		ClassID:     intPtr(math.ID),
	})
	require.NoError(t, err)

	income, err := env.reports.IncomeByClass(ctx)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Math", income[0].ClassName)
	assert.True(t, income[0].Total.Equal(decimal.NewFromInt(1000)))

	expense, err := env.reports.ExpenseByClass(ctx)
	require.NoError(t, err)
	assert.Empty(t, expense)

	rows, err := env.reports.ProfitLossByInstitute(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alpha", rows[0].InstituteName)
	assert.True(t, rows[0].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, rows[0].Expense.IsZero())
	assert.True(t, rows[0].ProfitLoss.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "Beta", rows[1].InstituteName)
	assert.True(t, rows[1].ProfitLoss.IsZero())
}

func TestReportSummaryTotals(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alpha := env.institute(t, "Alpha", 500)
	math := env.class(t, "Math")

	record := func(kind model.RegisterKind, amount string) {
		_, err := env.registers.RecordEntry(ctx, kind, &model.RegisterRequest{
			Amount:      decimal.RequireFromString(amount),
			InstituteID: intPtr(alpha.ID),
			ClassID:     intPtr(math.ID),
		})
		require.NoError(t, err)
	}
	record(model.RegisterIncome, "1000.50")
	record(model.RegisterExpense, "250.25")

	summary, err := env.reports.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(decimal.RequireFromString("1000.50")))
	assert.True(t, summary.TotalExpense.Equal(decimal.RequireFromString("250.25")))
	assert.True(t, summary.NetProfitLoss.Equal(decimal.RequireFromString("750.25")))
	assert.Len(t, summary.ExpenseByClass, 1)
}

func TestRecordEntryRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")
	physics := env.class(t, "Physics")
	sec := env.section(t, math.ID, date(2024, time.January, 1), date(2024, time.April, 1))

	_, err := env.registers.RecordEntry(ctx, model.RegisterIncome, &model.RegisterRequest{Amount: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = env.registers.RecordEntry(ctx, model.RegisterIncome, &model.RegisterRequest{Amount: decimal.RequireFromString("1.005")})
	assert.ErrorIs(t, err, ErrAmountPrecision)

	_, err = env.registers.RecordEntry(ctx, model.RegisterExpense, &model.RegisterRequest{
		Amount: decimal.NewFromInt(10), ClassID: intPtr(physics.ID), SectionID: intPtr(sec.ID),
	})
	assert.ErrorIs(t, err, ErrSectionClassMismatch)

	entries, err := env.registers.ListEntries(ctx, model.RegisterExpense)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = env.registers.ListEntries(ctx, model.RegisterIncome)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecordEntryDefaultsDateToToday(t *testing.T) {
	env := newTestEnv(t)
	entry, err := env.registers.RecordEntry(context.Background(), model.RegisterIncome, &model.RegisterRequest{Amount: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, model.Today(), entry.Date)
}

// mapCache is a ReportCache that keeps JSON in a map.
type mapCache struct {
	entries     map[string][]byte
	gen         int64
	invalidated int
}

func (c *mapCache) Generation(_ context.Context) (int64, error) {
	return c.gen, nil
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *mapCache) Set(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *mapCache) Invalidate(_ context.Context) error {
	for _, key := range config.CacheKey.ReportKeys(c.gen) {
		delete(c.entries, key)
	}
	c.gen++
	c.invalidated++
	return nil
}

func TestReportCacheServesUntilInvalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cache := &mapCache{entries: map[string][]byte{}}
	reports := NewReportService(env.store.Reports, cache, zerolog.Nop())
	registers := NewRegisterService(env.store, env.eligibility, reports)
	math := env.class(t, "Math")

	income, err := reports.IncomeByClass(ctx)
	require.NoError(t, err)
	assert.Empty(t, income)
	assert.Len(t, cache.entries, 1)

	_, err = registers.RecordEntry(ctx, model.RegisterIncome, &model.RegisterRequest{
		Amount: decimal.NewFromInt(70), ClassID: intPtr(math.ID),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidated)

	income, err = reports.IncomeByClass(ctx)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.True(t, income[0].Total.Equal(decimal.NewFromInt(70)))
}

func TestReportWarmFillsCache(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cache := &mapCache{entries: map[string][]byte{}}
	reports := NewReportService(env.store.Reports, cache, zerolog.Nop())

	require.NoError(t, reports.Warm(ctx))
	assert.Equal(t, 1, cache.invalidated)
	assert.Len(t, cache.entries, 3)

	require.NoError(t, NewReportService(env.store.Reports, nil, zerolog.Nop()).Warm(ctx))
}

// writeDuringSum runs write once, after the first class sum has been read
// from the store and before it reaches the cache.
type writeDuringSum struct {
	repository.ReportRepository
	write func()
}

func (r *writeDuringSum) SumByClass(ctx context.Context, kind model.RegisterKind) ([]model.ClassTotal, error) {
	rows, err := r.ReportRepository.SumByClass(ctx, kind)
	if write := r.write; write != nil {
		r.write = nil
		write()
	}
	return rows, err
}

func TestReportCacheDropsRowsComputedBeforeAWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	cache := &mapCache{entries: map[string][]byte{}}
	repo := &writeDuringSum{ReportRepository: env.store.Reports}
	reports := NewReportService(repo, cache, zerolog.Nop())
	registers := NewRegisterService(env.store, env.eligibility, reports)
	math := env.class(t, "Math")

	repo.write = func() {
		_, err := registers.RecordEntry(ctx, model.RegisterIncome, &model.RegisterRequest{
			Amount: decimal.NewFromInt(1000), ClassID: intPtr(math.ID),
		})
		require.NoError(t, err)
	}

	income, err := reports.IncomeByClass(ctx)
	require.NoError(t, err)
	assert.Empty(t, income)
	assert.Equal(t, 1, cache.invalidated)

	income, err = reports.IncomeByClass(ctx)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Math", income[0].ClassName)
	assert.True(t, income[0].Total.Equal(decimal.NewFromInt(1000)))
}
