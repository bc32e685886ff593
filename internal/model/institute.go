package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Institute is an external partner organisation that receives compensated
// training assignments.
type Institute struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Address        string          `json:"address"`
	FocalPerson    string          `json:"focal_person"`
	Contact        string          `json:"contact"`
	AgreementDate  *Date           `json:"agreement_date"`
	RatePerStudent decimal.Decimal `json:"rate_per_student"`
	AgreementPath  *string         `json:"agreement_path"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// InstituteRequest is the payload for registering or updating an institute.
// It binds from JSON or from a multipart form carrying the agreement file.
type InstituteRequest struct {
	Name           string          `json:"name" form:"name" binding:"required,notblank,max=255"`
	Address        string          `json:"address" form:"address" binding:"max=1000"`
	FocalPerson    string          `json:"focal_person" form:"focal_person" binding:"max=255"`
	Contact        string          `json:"contact" form:"contact" binding:"max=50"`
	AgreementDate  *Date           `json:"agreement_date" form:"agreement_date"`
	RatePerStudent decimal.Decimal `json:"rate_per_student" form:"rate_per_student"`
}

// Apply copies the request fields onto inst, leaving identity and the
// document path untouched.
func (r *InstituteRequest) Apply(inst *Institute) {
	inst.Name = r.Name
	inst.Address = r.Address
	inst.FocalPerson = r.FocalPerson
	inst.Contact = r.Contact
	inst.AgreementDate = r.AgreementDate
	inst.RatePerStudent = r.RatePerStudent
}
