package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstituteShare is a frozen snapshot of a payment owed to an institute.
// Its amounts are never recomputed after creation.
type InstituteShare struct {
	ID             int             `json:"id"`
	InstituteID    int             `json:"institute_id"`
	ClassID        int             `json:"class_id"`
	SectionID      int             `json:"section_id"`
	TotalStudents  int             `json:"total_students"`
	RatePerStudent decimal.Decimal `json:"rate_per_student"`
	DurationMonths int             `json:"duration_months"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaidDate       *Date           `json:"paid_date"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ShareComputation is the unsaved result of computing an institute share.
type ShareComputation struct {
	InstituteID    int             `json:"institute_id"`
	ClassID        int             `json:"class_id"`
	SectionID      int             `json:"section_id"`
	TotalStudents  int             `json:"total_students"`
	RatePerStudent decimal.Decimal `json:"rate_per_student"`
	DurationMonths int             `json:"duration_months"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// SaveShareRequest persists a share for the given triple.
type SaveShareRequest struct {
	Triple
	PaidDate *Date `json:"paid_date"`
}

// ComputeShareAmount returns students × rate × months without rounding.
func ComputeShareAmount(students int, rate decimal.Decimal, months int) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(students))).Mul(decimal.NewFromInt(int64(months)))
}

// Snapshot freezes the computation into a share record.
func (c *ShareComputation) Snapshot(paidDate *Date) *InstituteShare {
	return &InstituteShare{
		InstituteID:    c.InstituteID,
		ClassID:        c.ClassID,
		SectionID:      c.SectionID,
		TotalStudents:  c.TotalStudents,
		RatePerStudent: c.RatePerStudent,
		DurationMonths: c.DurationMonths,
		TotalAmount:    c.TotalAmount,
		PaidDate:       paidDate,
	}
}
