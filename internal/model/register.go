package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterKind selects the income or expense register.
type RegisterKind string

const (
	RegisterIncome  RegisterKind = "income"
	RegisterExpense RegisterKind = "expense"
)

// Valid reports whether k names a known register.
func (k RegisterKind) Valid() bool {
	return k == RegisterIncome || k == RegisterExpense
}

// RegisterEntry is one line of the income or expense register. The
// institute, class and section references are all optional.
type RegisterEntry struct {
	ID          int             `json:"id"`
	Kind        RegisterKind    `json:"kind"`
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	InstituteID *int            `json:"institute_id"`
	ClassID     *int            `json:"class_id"`
	SectionID   *int            `json:"section_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RegisterRequest is the payload for recording an income or expense.
type RegisterRequest struct {
	Date        Date            `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	InstituteID *int            `json:"institute_id" binding:"omitempty,min=1"`
	ClassID     *int            `json:"class_id" binding:"omitempty,min=1"`
	SectionID   *int            `json:"section_id" binding:"omitempty,min=0"`
}

// Attribution returns the references the entry points at.
func (r *RegisterRequest) Attribution() Attribution {
	return Attribution{
		InstituteID: r.InstituteID,
		ClassID:     r.ClassID,
		SectionID:   r.SectionID,
	}
}
