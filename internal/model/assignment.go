package model

import "time"

// Assignment binds an Institute to deliver a Class+Section to a number of students.
type Assignment struct {
	ID            int       `json:"id"`
	InstituteID   int       `json:"institute_id"`
	ClassID       int       `json:"class_id"`
	SectionID     int       `json:"section_id"`
	TotalStudents int       `json:"total_students"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AssignmentRequest is the payload for creating or updating an assignment.
type AssignmentRequest struct {
	InstituteID   int `json:"institute_id" binding:"required,min=1"`
	ClassID       int `json:"class_id" binding:"required,min=1"`
	SectionID     int `json:"section_id" binding:"min=0"`
	TotalStudents int `json:"total_students" binding:"min=0,max=2147483647"`
}

// Triple identifies an institute, class and section combination.
type Triple struct {
	InstituteID int `json:"institute_id" form:"institute_id" binding:"required,min=1"`
	ClassID     int `json:"class_id" form:"class_id" binding:"required,min=1"`
	SectionID   int `json:"section_id" form:"section_id" binding:"min=0"`
}

// Attribution is the set of optional references a record points at. Every
// write that touches a (class, section) pair is checked through it first.
type Attribution struct {
	InstituteID *int
	ClassID     *int
	SectionID   *int
}

// AttributionOf returns the Attribution of a fully specified triple.
func AttributionOf(t Triple) Attribution {
	return Attribution{
		InstituteID: &t.InstituteID,
		ClassID:     &t.ClassID,
		SectionID:   &t.SectionID,
	}
}
