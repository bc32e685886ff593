package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

// EligibilityService answers whether an institute, class and section may be
// combined. Every write that touches a (class, section) pair goes through
// CheckAttribution first.
type EligibilityService struct {
	institutes  repository.InstituteRepository
	classes     repository.ClassRepository
	sections    repository.SectionRepository
	assignments repository.AssignmentRepository
}

// NewEligibilityService creates a new EligibilityService.
func NewEligibilityService(store *repository.Store) *EligibilityService {
	return &EligibilityService{
		institutes:  store.Institutes,
		classes:     store.Classes,
		sections:    store.Sections,
		assignments: store.Assignments,
	}
}

// ValidateSectionBelongsToClass reports whether the section exists and is
// owned by classID. A lookup failure is returned, never folded into false.
func (s *EligibilityService) ValidateSectionBelongsToClass(ctx context.Context, sectionID, classID int) (bool, error) {
	section, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get section: %w", err)
	}
	return section.ClassID == classID, nil
}

// FindAssignment returns the assignment for the exact triple, or nil when it
// was never assigned.
func (s *EligibilityService) FindAssignment(ctx context.Context, instituteID, classID, sectionID int) (*model.Assignment, error) {
	a, err := s.assignments.FindByTriple(ctx, instituteID, classID, sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return a, nil
}

// CheckAttribution validates the optional references of a record about to
// be written.
func (s *EligibilityService) CheckAttribution(ctx context.Context, attr model.Attribution) error {
	if attr.SectionID != nil && *attr.SectionID == 0 {
		return invalid("section_id", ErrNoSectionSelected)
	}
	if attr.SectionID != nil && attr.ClassID == nil {
		return invalidf("class_id", "a class is required when a section is given")
	}

	if attr.InstituteID != nil {
		if _, err := s.institutes.GetByID(ctx, *attr.InstituteID); err != nil {
			return notFound(err, "institute", *attr.InstituteID)
		}
	}
	if attr.ClassID != nil {
		if _, err := s.classes.GetByID(ctx, *attr.ClassID); err != nil {
			return notFound(err, "class", *attr.ClassID)
		}
	}
	if attr.SectionID == nil {
		return nil
	}

	section, err := s.sections.GetByID(ctx, *attr.SectionID)
	if err != nil {
		return notFound(err, "section", *attr.SectionID)
	}
	if section.ClassID != *attr.ClassID {
		return invalid("section_id", ErrSectionClassMismatch)
	}
	return nil
}

// SectionsForClass lists the sections owned by classID.
func (s *EligibilityService) SectionsForClass(ctx context.Context, classID int) ([]*model.Section, error) {
	if _, err := s.classes.GetByID(ctx, classID); err != nil {
		return nil, notFound(err, "class", classID)
	}
	return s.sections.GetByClass(ctx, classID)
}

// ClassesWithSections lists the classes that own at least one section.
func (s *EligibilityService) ClassesWithSections(ctx context.Context) ([]*model.Class, error) {
	return s.classes.GetWithSections(ctx)
}
