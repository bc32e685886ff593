package service

import (
	"context"
	"strings"

	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type LetterService interface {
	ListLetters(ctx context.Context, direction model.LetterDirection) ([]*model.Letter, error)
	LogLetter(ctx context.Context, direction model.LetterDirection, req *model.LetterRequest) (*model.Letter, error)
}

type letterService struct {
	letterRepo repository.LetterRepository
}

func NewLetterService(letterRepo repository.LetterRepository) LetterService {
	return &letterService{letterRepo: letterRepo}
}

func (s *letterService) ListLetters(ctx context.Context, direction model.LetterDirection) ([]*model.Letter, error) {
	return s.letterRepo.GetAll(ctx, direction)
}

// LogLetter appends to the register. A missing date defaults to today.
func (s *letterService) LogLetter(ctx context.Context, direction model.LetterDirection, req *model.LetterRequest) (*model.Letter, error) {
	if !direction.Valid() {
		return nil, invalidf("direction", "unknown letter direction %q", direction)
	}

	letter := &model.Letter{
		Direction:    direction,
		Date:         req.Date,
		Reference:    strings.TrimSpace(req.Reference),
		Counterparty: strings.TrimSpace(req.Counterparty),
	}
	if letter.Date.IsZero() {
		letter.Date = model.Today()
	}

	if err := s.letterRepo.Create(ctx, letter); err != nil {
		return nil, err
	}
	return letter, nil
}
