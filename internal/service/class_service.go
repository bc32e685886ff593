package service

import (
	"context"
	"strings"

	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
)

type ClassService interface {
	GetAllClasses(ctx context.Context) ([]*model.Class, error)
	GetClass(ctx context.Context, id int) (*model.Class, error)
	CreateClass(ctx context.Context, req *model.ClassRequest) (*model.Class, error)
	UpdateClass(ctx context.Context, id int, req *model.ClassRequest) (*model.Class, error)
}

type classService struct {
	classRepo repository.ClassRepository
	reports   reportInvalidator
}

func NewClassService(classRepo repository.ClassRepository, reports reportInvalidator) ClassService {
	return &classService{classRepo: classRepo, reports: reports}
}

func (s *classService) GetAllClasses(ctx context.Context) ([]*model.Class, error) {
	return s.classRepo.GetAll(ctx)
}

func (s *classService) GetClass(ctx context.Context, id int) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "class", id)
	}
	return class, nil
}

func (s *classService) CreateClass(ctx context.Context, req *model.ClassRequest) (*model.Class, error) {
	class := &model.Class{
		Name:   strings.TrimSpace(req.Name),
		Agency: strings.TrimSpace(req.Agency),
	}
	if err := s.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}
	invalidateReports(ctx, s.reports)
	return class, nil
}

// UpdateClass renames a class. Reports group by name, so the cache is dropped.
func (s *classService) UpdateClass(ctx context.Context, id int, req *model.ClassRequest) (*model.Class, error) {
	class, err := s.classRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "class", id)
	}

	class.Name = strings.TrimSpace(req.Name)
	class.Agency = strings.TrimSpace(req.Agency)

	if err := s.classRepo.Update(ctx, class); err != nil {
		return nil, notFound(err, "class", id)
	}
	invalidateReports(ctx, s.reports)
	return class, nil
}
