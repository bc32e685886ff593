package service

import (
	"context"
	"strings"

	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type SectionService interface {
	GetAllSections(ctx context.Context) ([]*model.Section, error)
	GetSection(ctx context.Context, id int) (*model.Section, error)
	CreateSection(ctx context.Context, req *model.SectionRequest) (*model.Section, error)
	UpdateSection(ctx context.Context, id int, req *model.SectionRequest) (*model.Section, error)
}

type sectionService struct {
	sectionRepo repository.SectionRepository
	classRepo   repository.ClassRepository
	tx          database.Transactor
}

func NewSectionService(store *repository.Store) SectionService {
	return &sectionService{
		sectionRepo: store.Sections,
		classRepo:   store.Classes,
		tx:          store.Tx,
	}
}

func (s *sectionService) GetAllSections(ctx context.Context) ([]*model.Section, error) {
	return s.sectionRepo.GetAll(ctx)
}

func (s *sectionService) GetSection(ctx context.Context, id int) (*model.Section, error) {
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "section", id)
	}
	return section, nil
}

// CreateSection schedules a cohort. The duration is derived from the dates.
func (s *sectionService) CreateSection(ctx context.Context, req *model.SectionRequest) (*model.Section, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	section := &model.Section{
		ClassID:   req.ClassID,
		Name:      strings.TrimSpace(req.Name),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	section.ApplyDuration()

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection edits a section and recomputes its duration. Shares already
// saved keep the duration they were computed with. A section that is
// referenced by assignments, register entries or shares cannot move to
// another class, since those records carry the class as well.
func (s *sectionService) UpdateSection(ctx context.Context, id int, req *model.SectionRequest) (*model.Section, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	var section *model.Section
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.sectionRepo.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "section", id)
		}

		if current.ClassID != req.ClassID {
			refs, err := s.sectionRepo.CountReferences(ctx, id)
			if err != nil {
				return err
			}
			if refs > 0 {
				return invalid("class_id", ErrSectionInUse)
			}
		}

		current.ClassID = req.ClassID
		current.Name = strings.TrimSpace(req.Name)
		current.StartDate = req.StartDate
		current.EndDate = req.EndDate
		current.ApplyDuration()

		if err := s.sectionRepo.Update(ctx, current); err != nil {
			return notFound(err, "section", id)
		}
		section = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (s *sectionService) validate(ctx context.Context, req *model.SectionRequest) error {
	if req.StartDate.IsZero() {
		return invalidf("start_date", "start_date is required")
	}
	if req.EndDate.IsZero() {
		return invalidf("end_date", "end_date is required")
	}
	if req.EndDate.Before(req.StartDate) {
		return invalid("end_date", ErrInvalidDateRange)
	}
	if _, err := s.classRepo.GetByID(ctx, req.ClassID); err != nil {
		return notFound(err, "class", req.ClassID)
	}
	return nil
}
