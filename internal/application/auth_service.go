package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	repo "github.com/oksasatya/storefront-api/internal/domain/repository"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/mailer"
	mailtpl "github.com/oksasatya/storefront-api/pkg/mailer/templates"
)

const MinPasswordLength = 6

type AuthService struct {
	Accounts    repo.AccountRepository
	JWT         *helpers.JWTManager
	Revocations RevocationStore
	Mail        Publisher
	Config      *config.Config
	Logger      *logrus.Logger
}

func NewAuthService(accounts repo.AccountRepository, jwt *helpers.JWTManager, revocations RevocationStore, mail Publisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Accounts:    accounts,
		JWT:         jwt,
		Revocations: revocations,
		Mail:        mail,
		Config:      cfg,
		Logger:      logger,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.Role
}

// Session is a freshly minted token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	TokenID   string
}

func (s *AuthService) bcryptCost() int {
	if s.Config != nil && s.Config.BcryptCost > 0 {
		return s.Config.BcryptCost
	}
	return helpers.PasswordCost
}

// Register creates a standard or admin account. Callers exposing this publicly
// must decide who may pass RoleAdmin.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.Account, error) {
	name := strings.TrimSpace(in.Name)
	email := entity.NormalizeEmail(in.Email)
	if name == "" || email == "" || !strings.Contains(email, "@") || len(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("register: %w", errs.ErrInvalidAccount)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleStandard
	}
	if role != entity.RoleStandard && role != entity.RoleAdmin {
		return nil, fmt.Errorf("register: unknown role %q: %w", role, errs.ErrInvalidAccount)
	}

	hash, err := helpers.HashPassword(in.Password, s.bcryptCost())
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &entity.Account{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.Accounts.Create(ctx, a); err != nil {
		if !errors.Is(err, errs.ErrDuplicateAccount) && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create account failed")
		}
		return nil, err
	}

	s.enqueueWelcome(ctx, a)
	return a, nil
}

// Login checks credentials and mints a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Account, Session, error) {
	a, err := s.Accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, Session{}, err
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, Session{}, errs.ErrInvalidCredential
	}
	sess, err := s.IssueSession(a)
	if err != nil {
		return nil, Session{}, err
	}
	return a, sess, nil
}

func (s *AuthService) IssueSession(a *entity.Account) (Session, error) {
	token, exp, jti, err := s.JWT.Generate(helpers.SessionSubject{
		AccountID: a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
	})
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", a.ID).Error("sign session token failed")
		}
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: exp, TokenID: jti}, nil
}

// Logout denylists a still-valid token. Missing or invalid tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, raw string) error {
	if s.Revocations == nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	claims, err := s.JWT.Parse(raw)
	if err != nil {
		return nil
	}
	if err := s.Revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return unavailable("logout", err)
	}
	return nil
}

func (s *AuthService) enqueueWelcome(ctx context.Context, a *entity.Account) {
	if s.Mail == nil {
		return
	}
	data := mailtpl.NewWelcomeData(s.Config, a.Name, a.Email, mailtpl.WithTime(time.Now()))
	job := mailer.EmailJob{To: a.Email, Template: mailtpl.Welcome, Data: data}
	if err := s.Mail.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("account_id", a.ID).Warn("enqueue welcome email failed")
	}
}
