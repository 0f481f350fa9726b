package access

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	tokenrepo "dsignme/internal/repository/token"
)

// DefaultTTL is the lifetime of a provisioned token unless told otherwise.
const DefaultTTL = 24 * time.Hour

// Service validates and provisions bearer tokens for the content API.
type Service struct {
	repo   tokenrepo.Repository
	logger *logrus.Entry
	now    func() time.Time
}

func New(repo tokenrepo.Repository, logger *logrus.Entry) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger), now: time.Now}
}

// Validate returns the stored token or ErrUnauthorized. Expired tokens are
// removed on sight.
func (s *Service) Validate(ctx context.Context, token string) (*tokenrepo.Token, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	meta, err := s.repo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if s.now().After(meta.ExpiresAt) {
		if err := s.repo.Delete(ctx, token); err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.logger.WithError(err).Warn("delete expired token")
		}
		return nil, domain.ErrUnauthorized
	}
	return meta, nil
}

// Issue creates a random token with the given lifetime.
func (s *Service) Issue(ctx context.Context, label string, ttl time.Duration) (string, error) {
	return s.IssueFor(ctx, "", label, ttl)
}

// IssueFor creates a random token owned by userID.
func (s *Service) IssueFor(ctx context.Context, userID, label string, ttl time.Duration) (string, error) {
	expiresAt := s.now().Add(ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", err
		}
		err = s.repo.Create(ctx, tokenrepo.Token{Token: token, Label: label, UserID: userID, ExpiresAt: expiresAt})
		if err == nil {
			return token, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Provision stores a caller-chosen token, refreshing its expiry if it exists.
func (s *Service) Provision(ctx context.Context, token, label string, ttl time.Duration) error {
	if strings.TrimSpace(token) == "" {
		return domain.Invalid("token must not be empty")
	}
	return s.repo.Upsert(ctx, tokenrepo.Token{Token: token, Label: label, ExpiresAt: s.now().Add(ttl)})
}

// Revoke deletes a token.
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, token)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
