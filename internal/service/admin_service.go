package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AdminService manages admin records. Credentials are stored as bcrypt
// hashes; nothing here authenticates requests.
type AdminService struct {
	admins     repository.AdminRepository
	institutes repository.InstituteRepository
	tx         database.Transactor
	bcryptCost int
	log        zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(store *repository.Store, bcryptCost int, log zerolog.Logger) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{
		admins:     store.Admins,
		institutes: store.Institutes,
		tx:         store.Tx,
		bcryptCost: bcryptCost,
		log:        log.With().Str("component", "admin_service").Logger(),
	}
}

// List returns every admin ordered by name.
func (s *AdminService) List(ctx context.Context) ([]*model.Admin, error) {
	return s.admins.GetAll(ctx)
}

// Get returns one admin.
func (s *AdminService) Get(ctx context.Context, id int) (*model.Admin, error) {
	a, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "admin", id)
	}
	return a, nil
}

// Create registers an admin. The user id must be unique and every permitted
// institute must exist.
func (s *AdminService) Create(ctx context.Context, req *model.CreateAdminRequest) (*model.Admin, error) {
	admin := &model.Admin{
		Name:        strings.TrimSpace(req.Name),
		Designation: strings.TrimSpace(req.Designation),
		UserID:      strings.TrimSpace(req.UserID),
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	admin.PasswordHash = hash

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		perms, err := s.permissions(ctx, req.InstitutePermission)
		if err != nil {
			return err
		}
		admin.InstitutePermissions = perms

		if err := s.ensureUserIDFree(ctx, admin.UserID, 0); err != nil {
			return err
		}
		return s.admins.Create(ctx, admin)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int("admin_id", admin.ID).Str("user_id", admin.UserID).Msg("Admin created")
	return admin, nil
}

// Update edits an admin. An empty password keeps the stored hash.
func (s *AdminService) Update(ctx context.Context, id int, req *model.UpdateAdminRequest) (*model.Admin, error) {
	var hash string
	if req.Password != "" {
		h, err := s.hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	var admin *model.Admin
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return notFound(err, "admin", id)
		}

		perms, err := s.permissions(ctx, req.InstitutePermission)
		if err != nil {
			return err
		}

		current.Name = strings.TrimSpace(req.Name)
		current.Designation = strings.TrimSpace(req.Designation)
		current.UserID = strings.TrimSpace(req.UserID)
		current.InstitutePermissions = perms
		if hash != "" {
			current.PasswordHash = hash
		}

		if err := s.ensureUserIDFree(ctx, current.UserID, id); err != nil {
			return err
		}
		if err := s.admins.Update(ctx, current); err != nil {
			return notFound(err, "admin", id)
		}
		admin = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return admin, nil
}

// hashPassword bcrypts password. bcrypt only reads the first 72 bytes, so
// longer passwords are rejected rather than silently truncated.
func (s *AdminService) hashPassword(password string) (string, error) {
	if len(password) > model.MaxPasswordBytes {
		return "", invalid("password", ErrPasswordTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the admin's stored hash.
func (s *AdminService) CheckPassword(admin *model.Admin, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) == nil
}

// permissions parses raw and checks that every institute exists.
func (s *AdminService) permissions(ctx context.Context, raw string) (model.InstitutePermissions, error) {
	perms, err := model.ParseInstitutePermissions(raw)
	if err != nil {
		return nil, &ValidationError{Field: "institute_permission", Reason: err.Error(), Err: ErrInvalidPermission}
	}
	for _, id := range perms {
		if _, err := s.institutes.GetByID(ctx, id); err != nil {
			return nil, notFound(err, "institute", id)
		}
	}
	return perms, nil
}

func (s *AdminService) ensureUserIDFree(ctx context.Context, userID string, selfID int) error {
	existing, err := s.admins.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup user id: %w", err)
	}
	if existing.ID != selfID {
		return invalid("user_id", ErrDuplicateUserID)
	}
	return nil
}
