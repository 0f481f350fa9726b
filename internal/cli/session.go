package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"dsignme/internal/authgate"
)

// ErrNotSignedIn is returned when no unexpired token is stored.
var ErrNotSignedIn = errors.New("not signed in, run adminctl login")

type storedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// sessionFile persists the token with the same lifetime as the gateway
// session cookie.
type sessionFile struct {
	path string
	now  func() time.Time
}

func (s *sessionFile) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *sessionFile) Save(token string) error {
	buf, err := json.Marshal(storedToken{Token: token, ExpiresAt: s.clock().Add(authgate.CookieMaxAge)})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, buf, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *sessionFile) Load() (string, error) {
	buf, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNotSignedIn
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	var st storedToken
	if err := json.Unmarshal(buf, &st); err != nil || st.Token == "" {
		return "", ErrNotSignedIn
	}
	if !s.clock().Before(st.ExpiresAt) {
		_ = s.Remove()
		return "", ErrNotSignedIn
	}
	return st.Token, nil
}

func (s *sessionFile) Remove() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
