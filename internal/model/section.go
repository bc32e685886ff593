package model

import "time"

// Section is a scheduled cohort of a Class. DurationMonths is always derived
// from the dates and never taken from the caller.
type Section struct {
	ID             int       `json:"id"`
	ClassID        int       `json:"class_id"`
	Name           string    `json:"name"`
	StartDate      Date      `json:"start_date"`
	EndDate        Date      `json:"end_date"`
	DurationMonths int       `json:"duration_months"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SectionRequest is the payload for creating or updating a section.
type SectionRequest struct {
	ClassID   int    `json:"class_id" binding:"required,min=1"`
	Name      string `json:"name" binding:"required,notblank,max=255"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
}

// ApplyDuration recomputes DurationMonths from the section dates.
func (s *Section) ApplyDuration() {
	s.DurationMonths = MonthDifference(s.StartDate, s.EndDate)
}
