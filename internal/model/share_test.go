package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeShareAmount(t *testing.T) {
	tests := []struct {
		name     string
		students int
		rate     string
		months   int
		want     string
	}{
		{"typical", 40, "500", 3, "60000"},
		{"zero duration", 40, "500", 0, "0"},
		{"zero rate", 40, "0", 3, "0"},
		{"fractional rate stays exact", 3, "0.10", 1, "0.3"},
		{"large values", 1200, "12500.75", 18, "270016200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeShareAmount(tt.students, decimal.RequireFromString(tt.rate), tt.months)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestShareComputationSnapshot(t *testing.T) {
	paid := NewDate(2024, 5, 1)
	c := &ShareComputation{
		InstituteID:    1,
		ClassID:        2,
		SectionID:      3,
		TotalStudents:  40,
		RatePerStudent: decimal.NewFromInt(500),
		DurationMonths: 3,
		TotalAmount:    decimal.NewFromInt(60000),
	}

	share := c.Snapshot(&paid)

	assert.Equal(t, 1, share.InstituteID)
	assert.Equal(t, 3, share.SectionID)
	assert.Equal(t, 40, share.TotalStudents)
	assert.True(t, share.TotalAmount.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, &paid, share.PaidDate)
}
