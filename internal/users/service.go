package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Service is the admin-facing user manager.
type Service interface {
	List(ctx context.Context) ([]UserDTO, error)
	ChangeRole(ctx context.Context, id uuid.UUID, rawRole string) (*UserDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}

type service struct {
	repo userRepository
}

// NewService builds the admin user manager.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	out := make([]UserDTO, 0, len(records))
	for i := range records {
		out = append(out, *FromModel(&records[i]))
	}
	return out, nil
}

func (s *service) ChangeRole(ctx context.Context, id uuid.UUID, rawRole string) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	role, err := enums.ParseUserRole(rawRole)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role")
	}

	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update role")
	}
	return s.load(ctx, id)
}

func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate user")
	}
	return s.load(ctx, id)
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}
