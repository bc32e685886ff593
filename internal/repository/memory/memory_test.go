package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

func intPtr(v int) *int { return &v }

func TestTransactorRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Classes.Create(ctx, &model.Class{Name: "Kept"}))

	boom := errors.New("boom")
	err := store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := store.Classes.Create(ctx, &model.Class{Name: "Dropped"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	classes, err := store.Classes.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Kept", classes[0].Name)
}

func TestTransactorNestedCallJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return store.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return store.Classes.Create(ctx, &model.Class{Name: "Inner"})
		})
	})
	require.NoError(t, err)

	classes, err := store.Classes.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}

func TestAssignmentTripleIsUnique(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Assignments.Create(ctx, &model.Assignment{InstituteID: 1, ClassID: 2, SectionID: 3, TotalStudents: 10}))
	err := store.Assignments.Create(ctx, &model.Assignment{InstituteID: 1, ClassID: 2, SectionID: 3, TotalStudents: 20})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = store.Assignments.FindByTriple(ctx, 1, 2, 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReportSums(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	alpha := &model.Institute{Name: "Alpha"}
	beta := &model.Institute{Name: "Beta"}
	require.NoError(t, store.Institutes.Create(ctx, alpha))
	require.NoError(t, store.Institutes.Create(ctx, beta))
	math := &model.Class{Name: "Math"}
	require.NoError(t, store.Classes.Create(ctx, math))

	require.NoError(t, store.Registers.Create(ctx, &model.RegisterEntry{
		Kind: model.RegisterIncome, Amount: decimal.NewFromInt(1000),
		InstituteID: intPtr(alpha.ID), ClassID: intPtr(math.ID),
	}))
	require.NoError(t, store.Registers.Create(ctx, &model.RegisterEntry{
		Kind: model.RegisterIncome, Amount: decimal.NewFromInt(50),
	}))

	income, err := store.Reports.SumByClass(ctx, model.RegisterIncome)
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Math", income[0].ClassName)
	assert.True(t, income[0].Total.Equal(decimal.NewFromInt(1000)))

	expense, err := store.Reports.SumByClass(ctx, model.RegisterExpense)
	require.NoError(t, err)
	assert.Empty(t, expense)

	byInstitute, err := store.Reports.SumByInstitute(ctx, model.RegisterExpense)
	require.NoError(t, err)
	require.Len(t, byInstitute, 2)
	assert.Equal(t, "Alpha", byInstitute[0].InstituteName)
	assert.True(t, byInstitute[0].Total.IsZero())
	assert.Equal(t, "Beta", byInstitute[1].InstituteName)
}
