package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/internal/users"
	pkgauth "github.com/tiendaqr/backend/pkg/auth"
	"github.com/tiendaqr/backend/pkg/auth/session"
	"github.com/tiendaqr/backend/pkg/config"
	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
	"github.com/tiendaqr/backend/pkg/mailer"
	"github.com/tiendaqr/backend/pkg/security"
)

// invalidCredentialsMessage is deliberately identical for unknown emails,
// wrong passwords, and deactivated accounts.
const invalidCredentialsMessage = "invalid credentials"

const resetTokenTTL = 30 * time.Minute

var validate = validator.New(validator.WithRequiredStructEnabled())

type userStore interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type resetTokenStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	ResetTokenKey(token string) string
}

// Service implements register/login/refresh/logout and the password reset
// request flow.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error)
	Logout(ctx context.Context, accessID string) error
	RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error
}

// ServiceParams wires the auth service dependencies.
type ServiceParams struct {
	Users    userStore
	Sessions sessionManager
	Resets   resetTokenStore
	Mailer   mailer.Mailer
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Mail     config.MailConfig
	Logger   *logger.Logger
}

type service struct {
	users    userStore
	sessions sessionManager
	resets   resetTokenStore
	mailer   mailer.Mailer
	jwt      config.JWTConfig
	password config.PasswordConfig
	mail     config.MailConfig
	logg     *logger.Logger
}

// NewService builds the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("users store is required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Resets == nil {
		return nil, fmt.Errorf("reset token store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	if params.JWT.Secret == "" || params.JWT.Issuer == "" {
		return nil, fmt.Errorf("jwt secret and issuer are required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &service{
		users:    params.Users,
		sessions: params.Sessions,
		resets:   params.Resets,
		mailer:   params.Mailer,
		jwt:      params.JWT,
		password: params.Password,
		mail:     params.Mail,
		logg:     params.Logger,
	}, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, enums.UserRoleCliente)
}

// RegisterAdmin creates an admin account. Routing keeps it off production;
// the service itself does not re-check the environment.
func (s *service) RegisterAdmin(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	return s.register(ctx, req, enums.UserRoleAdmin)
}

func (s *service) register(ctx context.Context, req RegisterRequest, role enums.UserRole) (*AuthResponse, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration payload")
	}
	minLength := s.password.MinLength
	if minLength <= 0 {
		minLength = 6
	}
	if len(req.Password) < minLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("password must be at least %d characters", minLength))
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking email")
	}

	hash, err := security.HashPassword(req.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         role,
	})
	if err != nil {
		// The unique index on email backstops the conflict check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating user")
	}

	return s.issueSession(ctx, user)
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid login payload")
	}

	user, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	match, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}

func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid refresh payload")
	}

	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwt, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, req.RefreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotating session")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive {
		if revokeErr := s.sessions.Revoke(ctx, newAccessID); revokeErr != nil {
			s.logg.Error(ctx, "revoking session for unusable account", revokeErr)
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
		}
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	token, err := s.mintToken(user, newAccessID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		AccessToken:  token,
		RefreshToken: newRefresh,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) Logout(ctx context.Context, accessID string) error {
	if accessID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "access id is required")
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

// RequestPasswordReset always reports success to the caller so that the
// endpoint cannot be used to probe which emails have accounts.
func (s *service) RequestPasswordReset(ctx context.Context, req ResetPasswordRequest) error {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid reset payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Info(ctx, "password reset requested for unknown email")
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user")
	}
	if !user.IsActive {
		s.logg.Info(ctx, "password reset requested for deactivated account")
		return nil
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating reset token")
	}
	if err := s.resets.Set(ctx, s.resets.ResetTokenKey(token), user.ID.String(), resetTokenTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing reset token")
	}

	link := fmt.Sprintf("%s?token=%s", s.mail.ResetURL, url.QueryEscape(token))
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending reset email")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	accessID := session.NewAccessID()
	token, err := s.mintToken(user, accessID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating refresh session")
	}

	s.recordLogin(ctx, user.ID)

	return &AuthResponse{
		AccessToken:  token,
		RefreshToken: refresh,
		User:         users.FromModel(user),
	}, nil
}

func (s *service) mintToken(user *models.User, accessID string) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwt, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}
	return token, nil
}

// recordLogin is best effort. A failed timestamp write never blocks a login.
func (s *service) recordLogin(ctx context.Context, id uuid.UUID) {
	if err := s.users.UpdateLastLogin(ctx, id, time.Now().UTC()); err != nil {
		s.logg.Error(ctx, "recording last login", err)
	}
}
