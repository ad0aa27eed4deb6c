package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
)

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[uuid.UUID]*models.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, *user)
	}
	return out, nil
}

func (s *stubUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	return nil
}

func (s *stubUserRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.IsActive = active
	return nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLoginAt = &at
	return nil
}

func stubUser(role enums.UserRole) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "ana@example.com",
		Name:     "Ana Pérez",
		Role:     role,
		IsActive: true,
	}
}

func mustUserService(t *testing.T, repo userRepository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestServiceListOmitsPasswordHash(t *testing.T) {
	t.Parallel()

	user := stubUser(enums.UserRoleCliente)
	user.PasswordHash = "secret"
	svc := mustUserService(t, newStubUserRepo(user))

	out, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 user, got %d", len(out))
	}
	if out[0].Email != "ana@example.com" || out[0].Role != enums.UserRoleCliente {
		t.Fatalf("unexpected dto %+v", out[0])
	}
}

func TestServiceChangeRole(t *testing.T) {
	t.Parallel()

	user := stubUser(enums.UserRoleCliente)
	svc := mustUserService(t, newStubUserRepo(user))

	updated, err := svc.ChangeRole(context.Background(), user.ID, "admin")
	if err != nil {
		t.Fatalf("change role: %v", err)
	}
	if updated.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}
}

func TestServiceChangeRoleInvalidRole(t *testing.T) {
	t.Parallel()

	user := stubUser(enums.UserRoleCliente)
	svc := mustUserService(t, newStubUserRepo(user))

	_, err := svc.ChangeRole(context.Background(), user.ID, "superadmin")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceChangeRoleUnknownUser(t *testing.T) {
	t.Parallel()

	svc := mustUserService(t, newStubUserRepo())

	_, err := svc.ChangeRole(context.Background(), uuid.New(), "admin")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceDeactivate(t *testing.T) {
	t.Parallel()

	user := stubUser(enums.UserRoleCliente)
	svc := mustUserService(t, newStubUserRepo(user))

	updated, err := svc.Deactivate(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if updated.IsActive {
		t.Fatal("expected deactivated user")
	}
}

func TestServiceDeactivateUnknownUser(t *testing.T) {
	t.Parallel()

	svc := mustUserService(t, newStubUserRepo())

	_, err := svc.Deactivate(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
