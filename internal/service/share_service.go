package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

// ShareService computes the payment owed to an institute for an assignment
// and freezes it on request.
type ShareService struct {
	eligibility *EligibilityService
	institutes  repository.InstituteRepository
	sections    repository.SectionRepository
	shares      repository.ShareRepository
	tx          database.Transactor
	log         zerolog.Logger
}

// NewShareService creates a new ShareService.
func NewShareService(store *repository.Store, eligibility *EligibilityService, log zerolog.Logger) *ShareService {
	return &ShareService{
		eligibility: eligibility,
		institutes:  store.Institutes,
		sections:    store.Sections,
		shares:      store.Shares,
		tx:          store.Tx,
		log:         log.With().Str("component", "share_service").Logger(),
	}
}

// ComputeInstituteShare returns students × rate × months for the triple.
// Nothing is persisted.
func (s *ShareService) ComputeInstituteShare(ctx context.Context, instituteID, classID, sectionID int) (*model.ShareComputation, error) {
	assignment, err := s.eligibility.FindAssignment(ctx, instituteID, classID, sectionID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, invalid("assignment", ErrNoAssignment)
	}

	// Re-checked even though the assignment exists: the section may have
	// been moved to another class since.
	belongs, err := s.eligibility.ValidateSectionBelongsToClass(ctx, sectionID, classID)
	if err != nil {
		return nil, err
	}
	if !belongs {
		return nil, invalid("section_id", ErrSectionClassMismatch)
	}

	institute, err := s.institutes.GetByID(ctx, instituteID)
	if err != nil {
		return nil, notFound(err, "institute", instituteID)
	}
	section, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return nil, notFound(err, "section", sectionID)
	}

	return &model.ShareComputation{
		InstituteID:    instituteID,
		ClassID:        classID,
		SectionID:      sectionID,
		TotalStudents:  assignment.TotalStudents,
		RatePerStudent: institute.RatePerStudent,
		DurationMonths: section.DurationMonths,
		TotalAmount:    model.ComputeShareAmount(assignment.TotalStudents, institute.RatePerStudent, section.DurationMonths),
	}, nil
}

// SaveInstituteShare recomputes the share and stores the snapshot with the
// given paid date in one transaction.
func (s *ShareService) SaveInstituteShare(ctx context.Context, triple model.Triple, paidDate *model.Date) (*model.InstituteShare, error) {
	if paidDate != nil && paidDate.IsZero() {
		paidDate = nil
	}

	var share *model.InstituteShare
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		computation, err := s.ComputeInstituteShare(ctx, triple.InstituteID, triple.ClassID, triple.SectionID)
		if err != nil {
			return err
		}
		if !model.FitsNumeric(computation.TotalAmount, model.ShareTotalPrecision, model.MoneyScale) {
			return invalid("total_amount", ErrAmountPrecision)
		}
		share = computation.Snapshot(paidDate)
		if err := s.shares.Create(ctx, share); err != nil {
			return fmt.Errorf("create share: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int("share_id", share.ID).
		Int("institute_id", share.InstituteID).
		Str("total_amount", share.TotalAmount.String()).
		Msg("Institute share saved")
	return share, nil
}

// List returns every saved share, newest first.
func (s *ShareService) List(ctx context.Context) ([]*model.InstituteShare, error) {
	return s.shares.GetAll(ctx)
}
