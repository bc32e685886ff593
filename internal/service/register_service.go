package service

import (
	"context"

	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type RegisterService interface {
	ListEntries(ctx context.Context, kind model.RegisterKind) ([]*model.RegisterEntry, error)
	RecordEntry(ctx context.Context, kind model.RegisterKind, req *model.RegisterRequest) (*model.RegisterEntry, error)
}

type registerService struct {
	registerRepo repository.RegisterRepository
	eligibility  *EligibilityService
	reports      reportInvalidator
	tx           database.Transactor
}

func NewRegisterService(store *repository.Store, eligibility *EligibilityService, reports reportInvalidator) RegisterService {
	return &registerService{
		registerRepo: store.Registers,
		eligibility:  eligibility,
		reports:      reports,
		tx:           store.Tx,
	}
}

func (s *registerService) ListEntries(ctx context.Context, kind model.RegisterKind) ([]*model.RegisterEntry, error) {
	return s.registerRepo.GetAll(ctx, kind)
}

// RecordEntry validates the attribution and appends the entry in one
// transaction. A missing date defaults to today.
func (s *registerService) RecordEntry(ctx context.Context, kind model.RegisterKind, req *model.RegisterRequest) (*model.RegisterEntry, error) {
	if !kind.Valid() {
		return nil, invalidf("kind", "unknown register kind %q", kind)
	}
	if req.Amount.IsNegative() {
		return nil, invalid("amount", ErrNegativeAmount)
	}
	if !model.FitsMoney(req.Amount) {
		return nil, invalid("amount", ErrAmountPrecision)
	}

	entry := &model.RegisterEntry{
		Kind:        kind,
		Date:        req.Date,
		Amount:      req.Amount,
		InstituteID: req.InstituteID,
		ClassID:     req.ClassID,
		SectionID:   req.SectionID,
	}
	if entry.Date.IsZero() {
		entry.Date = model.Today()
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.eligibility.CheckAttribution(ctx, req.Attribution()); err != nil {
			return err
		}
		return s.registerRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	invalidateReports(ctx, s.reports)
	return entry, nil
}
