// Package account signs administrators in with email and password and hands
// out bearer tokens for the content API.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	userrepo "dsignme/internal/repository/user"
)

var (
	// ErrInvalidCredentials is returned when email and password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when a token acts on another user's account.
	ErrForbidden = errors.New("forbidden")
)

// SessionTTL is the lifetime of a token issued by Login.
const SessionTTL = 24 * time.Hour

const passwordMin = 8

// TokenIssuer mints tokens owned by a user.
type TokenIssuer interface {
	IssueFor(ctx context.Context, userID, label string, ttl time.Duration) (string, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type Service struct {
	users    userrepo.Repository
	tokens   TokenIssuer
	validate *validator.Validate
	logger   *logrus.Entry
	cost     int
}

func New(users userrepo.Repository, tokens TokenIssuer, logger *logrus.Entry) *Service {
	return &Service{
		users:    users,
		tokens:   tokens,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logging.OrDiscard(logger),
		cost:     bcrypt.DefaultCost,
	}
}

// Register stores a new user with a bcrypt hash of password. A taken email
// yields domain.ErrAlreadyExists.
func (s *Service) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.check(email, password); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}
	s.logger.WithField("user_id", u.ID).Info("user registered")
	return u, nil
}

// Login checks the password and issues a token for the user. Unknown emails
// and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.Invalid("Email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.IssueFor(ctx, u.ID, "login", SessionTTL)
}

// ResetPassword replaces the password of userID. When email is given it
// must belong to that user.
func (s *Service) ResetPassword(ctx context.Context, userID, email, newPassword string) error {
	if userID == "" {
		return ErrForbidden
	}
	if newPassword == "" {
		return domain.Invalid("New password is required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if email = strings.TrimSpace(email); email != "" && !strings.EqualFold(email, u.Email) {
		return ErrForbidden
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return err
	}
	s.logger.WithField("user_id", u.ID).Info("password reset")
	return nil
}

// EnsureUser registers email unless it already exists. Seeding uses it.
func (s *Service) EnsureUser(ctx context.Context, email, password string) (*domain.User, bool, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	u, err = s.Register(ctx, email, password)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *Service) check(email, password string) error {
	err := s.validate.Struct(credentials{Email: email, Password: password})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "email" {
		return domain.Invalid("Email address is invalid")
	}
	return domain.Invalid("Email and password are required")
}

func validatePassword(p string) error {
	if len(p) < passwordMin {
		return domain.Invalid(fmt.Sprintf("Password must be at least %d characters", passwordMin))
	}
	// bcrypt ignores everything past 72 bytes.
	if len(p) > 72 {
		return domain.Invalid("Password must be at most 72 bytes")
	}
	return nil
}
