package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

// Upload is an agreement document attached to an institute write.
type Upload struct {
	FileName string
	Content  io.Reader
}

// InstituteResult is a saved institute plus any non-fatal warnings. Handlers
// put the warnings in the response envelope.
type InstituteResult struct {
	Institute *model.Institute
	Warnings  []string
}

// InstituteService registers and updates partner institutes.
type InstituteService struct {
	institutes repository.InstituteRepository
	documents  *DocumentService
	reports    reportInvalidator
	strict     bool
	log        zerolog.Logger
}

// NewInstituteService creates a new InstituteService. With strict set, a
// failed document write aborts the operation instead of producing a warning.
func NewInstituteService(
	institutes repository.InstituteRepository,
	documents *DocumentService,
	reports reportInvalidator,
	strict bool,
	log zerolog.Logger,
) *InstituteService {
	return &InstituteService{
		institutes: institutes,
		documents:  documents,
		reports:    reports,
		strict:     strict,
		log:        log.With().Str("component", "institute_service").Logger(),
	}
}

// List returns all institutes ordered by name.
func (s *InstituteService) List(ctx context.Context) ([]*model.Institute, error) {
	return s.institutes.GetAll(ctx)
}

// Get returns one institute.
func (s *InstituteService) Get(ctx context.Context, id int) (*model.Institute, error) {
	inst, err := s.institutes.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "institute", id)
	}
	return inst, nil
}

// Create registers an institute, storing the agreement document if given.
func (s *InstituteService) Create(ctx context.Context, req *model.InstituteRequest, upload *Upload) (*InstituteResult, error) {
	if err := validateInstituteRequest(req); err != nil {
		return nil, err
	}

	inst := &model.Institute{}
	req.Apply(inst)

	result := &InstituteResult{Institute: inst}
	if err := s.attachAgreement(ctx, inst, upload, result); err != nil {
		return nil, err
	}

	if err := s.institutes.Create(ctx, inst); err != nil {
		return nil, fmt.Errorf("create institute: %w", err)
	}
	invalidateReports(ctx, s.reports)

	s.log.Info().Int("institute_id", inst.ID).Str("name", inst.Name).Msg("Institute registered")
	return result, nil
}

// Update replaces the editable fields of an institute. A new upload replaces
// the agreement document; without one the current path is kept.
func (s *InstituteService) Update(ctx context.Context, id int, req *model.InstituteRequest, upload *Upload) (*InstituteResult, error) {
	if err := validateInstituteRequest(req); err != nil {
		return nil, err
	}

	inst, err := s.institutes.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "institute", id)
	}
	req.Apply(inst)

	result := &InstituteResult{Institute: inst}
	if err := s.attachAgreement(ctx, inst, upload, result); err != nil {
		return nil, err
	}

	if err := s.institutes.Update(ctx, inst); err != nil {
		return nil, notFound(err, "institute", id)
	}
	invalidateReports(ctx, s.reports)
	return result, nil
}

// attachAgreement stores upload and records its path on inst. A storage
// failure leaves the path as it was and adds a warning, unless strict.
func (s *InstituteService) attachAgreement(ctx context.Context, inst *model.Institute, upload *Upload, result *InstituteResult) error {
	if upload == nil || upload.Content == nil {
		return nil
	}

	path, err := s.documents.StoreAgreement(ctx, inst.Name, upload.FileName, upload.Content)
	if err != nil {
		var storageErr *StorageError
		if !errors.As(err, &storageErr) || s.strict {
			return err
		}
		s.log.Warn().Err(err).Str("institute", inst.Name).Msg("Agreement document not stored")
		result.Warnings = append(result.Warnings, "agreement document could not be stored: "+storageErr.Err.Error())
		return nil
	}

	inst.AgreementPath = &path
	return nil
}

func validateInstituteRequest(req *model.InstituteRequest) error {
	if req.RatePerStudent.IsNegative() {
		return invalid("rate_per_student", ErrNegativeAmount)
	}
	if !model.FitsMoney(req.RatePerStudent) {
		return invalid("rate_per_student", ErrAmountPrecision)
	}
	if req.AgreementDate != nil && req.AgreementDate.IsZero() {
		req.AgreementDate = nil
	}
	return nil
}
