// Package seed loads demo content through the services so that every
// business rule applies to it.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	contactsvc "dsignme/internal/service/contact"
	projectsvc "dsignme/internal/service/project"
	stepsvc "dsignme/internal/service/servicestep"
)

// TokenTTL is the lifetime of the admin token created by a seed run.
const TokenTTL = 30 * 24 * time.Hour

//go:embed seed.yaml
var defaultFixtures []byte

type Fixtures struct {
	Categories []CategoryFixture `yaml:"categories"`
	Contacts   []ContactFixture  `yaml:"contacts"`
}

type CategoryFixture struct {
	Name     string           `yaml:"name"`
	Steps    []StepFixture    `yaml:"steps"`
	Projects []ProjectFixture `yaml:"projects"`
}

type ProjectFixture struct {
	Title    string `yaml:"title"`
	Type     string `yaml:"type"`
	ImageURL string `yaml:"imageUrl"`
	VideoURL string `yaml:"videoUrl"`
}

type ContactFixture struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Message string `yaml:"message"`
}

type StepFixture struct {
	Title     string            `yaml:"title"`
	Subtitles []domain.Subtitle `yaml:"subtitles"`
}

// Default returns the embedded demo fixtures.
func Default() (Fixtures, error) {
	return Parse(bytes.NewReader(defaultFixtures))
}

func Parse(r io.Reader) (Fixtures, error) {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil {
		return Fixtures{}, fmt.Errorf("decode fixtures: %w", err)
	}
	return fx, nil
}

type Categories interface {
	Resolve(ctx context.Context, name string) (*domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

type Projects interface {
	ListByCategory(ctx context.Context, categoryName string) ([]domain.Project, error)
	Create(ctx context.Context, categoryName string, in projectsvc.Input) (*domain.Project, error)
}

type Steps interface {
	List(ctx context.Context, categoryName string) ([]domain.ServiceStep, error)
	Create(ctx context.Context, categoryName string, in stepsvc.Input) (*domain.ServiceStep, error)
}

type Contacts interface {
	List(ctx context.Context) ([]domain.Contact, error)
	Submit(ctx context.Context, in contactsvc.Input) (*domain.Contact, error)
}

type Tokens interface {
	Provision(ctx context.Context, token, label string, ttl time.Duration) error
	Issue(ctx context.Context, label string, ttl time.Duration) (string, error)
}

type Users interface {
	EnsureUser(ctx context.Context, email, password string) (*domain.User, bool, error)
}

// Admin is a sign-in account created when missing.
type Admin struct {
	Email    string
	Password string
}

type Seeder struct {
	Categories Categories
	Projects   Projects
	Steps      Steps
	Contacts   Contacts
	Tokens     Tokens
	// Users is only needed when Admin is set.
	Users  Users
	Admin  Admin
	Logger *logrus.Entry
}

// Report counts what a run created.
type Report struct {
	Categories int
	Projects   int
	Steps      int
	Contacts   int
	// Token is set when a new admin token was issued or provisioned.
	Token string
	// AdminCreated is set when the admin account did not exist yet.
	AdminCreated bool
}

// Apply creates the fixtures. Content of a category is only added while
// the category has none, so repeated runs do not duplicate it. adminToken,
// when set, is provisioned as is; otherwise a fresh token is issued.
func (s *Seeder) Apply(ctx context.Context, fx Fixtures, adminToken string) (Report, error) {
	logger := logging.OrDiscard(s.Logger)
	var rep Report

	for _, cf := range fx.Categories {
		created, err := s.ensureCategory(ctx, cf.Name)
		if err != nil {
			return rep, fmt.Errorf("category %s: %w", cf.Name, err)
		}
		if created {
			rep.Categories++
		}

		n, err := s.seedSteps(ctx, cf)
		if err != nil {
			return rep, fmt.Errorf("steps of %s: %w", cf.Name, err)
		}
		rep.Steps += n

		n, err = s.seedProjects(ctx, cf)
		if err != nil {
			return rep, fmt.Errorf("projects of %s: %w", cf.Name, err)
		}
		rep.Projects += n
	}

	existing, err := s.Contacts.List(ctx)
	if err != nil {
		return rep, fmt.Errorf("list contacts: %w", err)
	}
	if len(existing) == 0 {
		for _, c := range fx.Contacts {
			in := contactsvc.Input{Name: c.Name, Email: c.Email, Message: c.Message}
			if _, err := s.Contacts.Submit(ctx, in); err != nil {
				return rep, fmt.Errorf("contact %s: %w", c.Email, err)
			}
			rep.Contacts++
		}
	}

	if adminToken != "" {
		if err := s.Tokens.Provision(ctx, adminToken, "seed", TokenTTL); err != nil {
			return rep, fmt.Errorf("provision token: %w", err)
		}
		rep.Token = adminToken
	} else {
		tok, err := s.Tokens.Issue(ctx, "seed", TokenTTL)
		if err != nil {
			return rep, fmt.Errorf("issue token: %w", err)
		}
		rep.Token = tok
	}

	if s.Admin.Email != "" {
		if s.Users == nil {
			return rep, fmt.Errorf("admin %s: no user store", s.Admin.Email)
		}
		_, created, err := s.Users.EnsureUser(ctx, s.Admin.Email, s.Admin.Password)
		if err != nil {
			return rep, fmt.Errorf("admin %s: %w", s.Admin.Email, err)
		}
		rep.AdminCreated = created
	}

	logger.WithFields(logrus.Fields{
		"admin_created": rep.AdminCreated,
		"categories":    rep.Categories,
		"projects":      rep.Projects,
		"steps":         rep.Steps,
		"contacts":      rep.Contacts,
	}).Info("seed applied")
	return rep, nil
}

func (s *Seeder) ensureCategory(ctx context.Context, name string) (bool, error) {
	_, err := s.Categories.Resolve(ctx, name)
	if err == nil {
		return false, nil
	}
	if !domain.IsValidation(err) {
		return false, err
	}
	if _, err := s.Categories.Create(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) seedSteps(ctx context.Context, cf CategoryFixture) (int, error) {
	cat, err := s.Categories.Resolve(ctx, cf.Name)
	if err != nil {
		return 0, err
	}
	existing, err := s.Steps.List(ctx, cf.Name)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for _, st := range cf.Steps {
		in := stepsvc.Input{CategoryID: cat.ID, Title: st.Title, Subtitles: st.Subtitles}
		if _, err := s.Steps.Create(ctx, cf.Name, in); err != nil {
			return 0, fmt.Errorf("%s: %w", st.Title, err)
		}
	}
	return len(cf.Steps), nil
}

func (s *Seeder) seedProjects(ctx context.Context, cf CategoryFixture) (int, error) {
	existing, err := s.Projects.ListByCategory(ctx, cf.Name)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for _, p := range cf.Projects {
		in := projectsvc.Input{Type: p.Type, Title: p.Title, ImageURL: p.ImageURL, VideoURL: p.VideoURL}
		if _, err := s.Projects.Create(ctx, cf.Name, in); err != nil {
			return 0, fmt.Errorf("%s: %w", p.Title, err)
		}
	}
	return len(cf.Projects), nil
}
