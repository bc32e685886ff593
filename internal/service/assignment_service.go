package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type AssignmentService interface {
	GetAllAssignments(ctx context.Context) ([]*model.Assignment, error)
	GetAssignment(ctx context.Context, id int) (*model.Assignment, error)
	CreateAssignment(ctx context.Context, req *model.AssignmentRequest) (*model.Assignment, error)
	UpdateAssignment(ctx context.Context, id int, req *model.AssignmentRequest) (*model.Assignment, error)
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	eligibility    *EligibilityService
	tx             database.Transactor
	log            zerolog.Logger
}

func NewAssignmentService(store *repository.Store, eligibility *EligibilityService, log zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignmentRepo: store.Assignments,
		eligibility:    eligibility,
		tx:             store.Tx,
		log:            log.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) GetAllAssignments(ctx context.Context) ([]*model.Assignment, error) {
	return s.assignmentRepo.GetAll(ctx)
}

func (s *assignmentService) GetAssignment(ctx context.Context, id int) (*model.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "assignment", id)
	}
	return a, nil
}

// CreateAssignment validates the triple and inserts it in one transaction.
// A section from another class is rejected and nothing is written.
func (s *assignmentService) CreateAssignment(ctx context.Context, req *model.AssignmentRequest) (*model.Assignment, error) {
	a := &model.Assignment{
		InstituteID:   req.InstituteID,
		ClassID:       req.ClassID,
		SectionID:     req.SectionID,
		TotalStudents: req.TotalStudents,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.check(ctx, a); err != nil {
			return err
		}
		return s.assignmentRepo.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("assignment_id", a.ID).
		Int("institute_id", a.InstituteID).
		Int("section_id", a.SectionID).
		Msg("Assignment created")
	return a, nil
}

// UpdateAssignment re-validates the triple before saving.
func (s *assignmentService) UpdateAssignment(ctx context.Context, id int, req *model.AssignmentRequest) (*model.Assignment, error) {
	var a *model.Assignment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.assignmentRepo.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "assignment", id)
		}
		current.InstituteID = req.InstituteID
		current.ClassID = req.ClassID
		current.SectionID = req.SectionID
		current.TotalStudents = req.TotalStudents

		if err := s.check(ctx, current); err != nil {
			return err
		}
		if err := s.assignmentRepo.Update(ctx, current); err != nil {
			return notFound(err, "assignment", id)
		}
		a = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assignmentService) check(ctx context.Context, a *model.Assignment) error {
	if a.TotalStudents < 0 {
		return invalidf("total_students", "total_students must not be negative")
	}
	if a.TotalStudents > math.MaxInt32 {
		return invalidf("total_students", "total_students must be at most %d", math.MaxInt32)
	}
	return s.eligibility.CheckAttribution(ctx, model.AttributionOf(model.Triple{
		InstituteID: a.InstituteID,
		ClassID:     a.ClassID,
		SectionID:   a.SectionID,
	}))
}
