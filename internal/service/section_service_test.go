package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/institute-backend/internal/model"
)

func TestCreateSectionDerivesDuration(t *testing.T) {
	env := newTestEnv(t)
	math := env.class(t, "Math")

	sec, err := env.sections.CreateSection(context.Background(), &model.SectionRequest{
		ClassID:   math.ID,
		Name:      " Morning ",
		StartDate: date(2023, time.November, 20),
		EndDate:   date(2024, time.February, 3),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, sec.DurationMonths)
	assert.Equal(t, "Morning", sec.Name)
}

func TestCreateSectionRejectsInvertedDates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")

	_, err := env.sections.CreateSection(ctx, &model.SectionRequest{
		ClassID:   math.ID,
		Name:      "Backwards",
		StartDate: date(2024, time.May, 1),
		EndDate:   date(2024, time.April, 1),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end_date", ve.Field)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	sections, err := env.sections.GetAllSections(ctx)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestCreateSectionRequiresDatesAndClass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")

	_, err := env.sections.CreateSection(ctx, &model.SectionRequest{ClassID: math.ID, Name: "No dates"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "start_date", ve.Field)

	_, err = env.sections.CreateSection(ctx, &model.SectionRequest{
		ClassID: 9999, Name: "Orphan", StartDate: date(2024, 1, 1), EndDate: date(2024, 2, 1),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSectionRecomputesDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")
	sec := env.section(t, math.ID, date(2024, time.January, 1), date(2024, time.February, 1))

	updated, err := env.sections.UpdateSection(ctx, sec.ID, &model.SectionRequest{
		ClassID: math.ID, Name: sec.Name, StartDate: sec.StartDate, EndDate: date(2024, time.July, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, updated.DurationMonths)

	stored, err := env.sections.GetSection(ctx, sec.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.DurationMonths)
}

func TestUpdateSectionKeepsAssignedSectionInItsClass(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inst := env.institute(t, "Alpha", 500)
	math := env.class(t, "Math")
	physics := env.class(t, "Physics")
	sec := env.section(t, math.ID, date(2024, time.January, 1), date(2024, time.April, 1))
	a := env.assign(t, inst.ID, math.ID, sec.ID, 40)

	_, err := env.sections.UpdateSection(ctx, sec.ID, &model.SectionRequest{
		ClassID: physics.ID, Name: sec.Name, StartDate: sec.StartDate, EndDate: sec.EndDate,
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "class_id", ve.Field)
	assert.ErrorIs(t, err, ErrSectionInUse)

	stored, err := env.sections.GetSection(ctx, sec.ID)
	require.NoError(t, err)
	assert.Equal(t, math.ID, stored.ClassID)
	assignment, err := env.assignments.GetAssignment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ClassID, assignment.ClassID)

	// Renaming and rescheduling within the same class stays allowed.
	updated, err := env.sections.UpdateSection(ctx, sec.ID, &model.SectionRequest{
		ClassID: math.ID, Name: "Evening", StartDate: sec.StartDate, EndDate: date(2024, time.July, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, "Evening", updated.Name)
}

func TestUpdateSectionMovesUnreferencedSection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")
	physics := env.class(t, "Physics")
	sec := env.section(t, math.ID, date(2024, time.January, 1), date(2024, time.April, 1))

	updated, err := env.sections.UpdateSection(ctx, sec.ID, &model.SectionRequest{
		ClassID: physics.ID, Name: sec.Name, StartDate: sec.StartDate, EndDate: sec.EndDate,
	})
	require.NoError(t, err)
	assert.Equal(t, physics.ID, updated.ClassID)
}

func TestUpdateSectionBlockedByRegisterEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	math := env.class(t, "Math")
	physics := env.class(t, "Physics")
	sec := env.section(t, math.ID, date(2024, time.January, 1), date(2024, time.April, 1))

	_, err := env.registers.RecordEntry(ctx, model.RegisterExpense, &model.RegisterRequest{
		Amount: decimal.NewFromInt(10), ClassID: intPtr(math.ID), SectionID: intPtr(sec.ID),
	})
	require.NoError(t, err)

	_, err = env.sections.UpdateSection(ctx, sec.ID, &model.SectionRequest{
		ClassID: physics.ID, Name: sec.Name, StartDate: sec.StartDate, EndDate: sec.EndDate,
	})
	assert.ErrorIs(t, err, ErrSectionInUse)
}
