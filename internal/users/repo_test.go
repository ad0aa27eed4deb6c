package users

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Exec("DELETE FROM users").Error
	})
	return conn
}

func mustCreateTestUser(t *testing.T, repo *Repository, role enums.UserRole) *models.User {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        fmt.Sprintf("tienda_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
		Name:         "Prueba",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRepositoryCreateDefaults(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	user := mustCreateTestUser(t, repo, "")

	if user.ID == uuid.Nil {
		t.Fatal("expected assigned id")
	}
	if user.Role != enums.UserRoleCliente {
		t.Fatalf("expected cliente default, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatal("expected active by default")
	}
}

func TestRepositoryFindByEmail(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := mustCreateTestUser(t, repo, enums.UserRoleCliente)

	found, err := repo.FindByEmail(ctx, created.Email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("expected %s, got %s", created.ID, found.ID)
	}

	if _, err := repo.FindByEmail(ctx, "missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestRepositoryUpdateRole(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := mustCreateTestUser(t, repo, enums.UserRoleCliente)

	if err := repo.UpdateRole(ctx, created.ID, enums.UserRoleAdmin); err != nil {
		t.Fatalf("update role: %v", err)
	}
	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin, got %s", found.Role)
	}

	if err := repo.UpdateRole(ctx, uuid.New(), enums.UserRoleAdmin); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
}

func TestRepositorySetActive(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := mustCreateTestUser(t, repo, enums.UserRoleCliente)

	if err := repo.SetActive(ctx, created.ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.IsActive {
		t.Fatal("expected deactivated user")
	}
}

func TestRepositoryUpdateLastLogin(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	created := mustCreateTestUser(t, repo, enums.UserRoleCliente)
	at := time.Now().UTC().Truncate(time.Second)

	if err := repo.UpdateLastLogin(ctx, created.ID, at); err != nil {
		t.Fatalf("update last login: %v", err)
	}
	found, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found.LastLoginAt == nil || !found.LastLoginAt.Equal(at) {
		t.Fatalf("expected last login %s, got %v", at, found.LastLoginAt)
	}
}

func TestRepositoryList(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	mustCreateTestUser(t, repo, enums.UserRoleCliente)
	mustCreateTestUser(t, repo, enums.UserRoleAdmin)

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 users, got %d", len(records))
	}
}
