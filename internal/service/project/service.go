package project

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	filerepo "dsignme/internal/repository/file"
	"dsignme/internal/repository/project"
)

// CategoryResolver turns a URL category name into a category.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (*domain.Category, error)
}

// Input is the writable part of a project. Type may be empty, in which case
// the media kind is derived from the URL fields.
type Input struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	VideoURL string `json:"videoUrl"`
}

type Service struct {
	repo       project.Repository
	files      filerepo.Repository
	categories CategoryResolver
	logger     *logrus.Entry
}

func New(repo project.Repository, files filerepo.Repository, categories CategoryResolver, logger *logrus.Entry) *Service {
	return &Service{
		repo:       repo,
		files:      files,
		categories: categories,
		logger:     logging.OrDiscard(logger),
	}
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Project, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, categoryName string) ([]domain.Project, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByCategory(ctx, cat.ID)
}

func (s *Service) Create(ctx context.Context, categoryName string, in Input) (*domain.Project, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	p, err := buildProject(in)
	if err != nil {
		return nil, err
	}
	p.CategoryID = cat.ID
	out, err := s.repo.Create(ctx, p)
	return out, fileRefError(p, err)
}

func (s *Service) Update(ctx context.Context, categoryName, id string, in Input) (*domain.Project, error) {
	existing, err := s.inCategory(ctx, categoryName, id)
	if err != nil {
		return nil, err
	}
	p, err := buildProject(in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CategoryID = existing.CategoryID
	out, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, fileRefError(p, err)
	}
	if existing.FileID != "" && existing.FileID != out.FileID {
		s.removeFile(ctx, existing.FileID)
	}
	return out, nil
}

// Delete removes the project and the uploaded file it references.
func (s *Service) Delete(ctx context.Context, categoryName, id string) error {
	existing, err := s.inCategory(ctx, categoryName, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if existing.FileID != "" {
		s.removeFile(ctx, existing.FileID)
	}
	return nil
}

func (s *Service) inCategory(ctx context.Context, categoryName, id string) (*domain.Project, error) {
	cat, err := s.categories.Resolve(ctx, categoryName)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.CategoryID != cat.ID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) removeFile(ctx context.Context, id string) {
	if err := s.files.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.WithError(err).WithField("file_id", id).Warn("remove project file")
	}
}

func buildProject(in Input) (domain.Project, error) {
	p := domain.Project{
		Title:    strings.TrimSpace(in.Title),
		ImageURL: strings.TrimSpace(in.ImageURL),
		VideoURL: strings.TrimSpace(in.VideoURL),
	}

	kind := domain.MediaKind(strings.TrimSpace(in.Type))
	if kind == "youtube" {
		kind = domain.MediaVideoURL
	}
	if kind == "" {
		kind = domain.DeriveMedia(p.ImageURL, p.VideoURL).Kind
	}
	if !kind.Valid() {
		return domain.Project{}, domain.Invalid("Invalid project type")
	}

	switch kind {
	case domain.MediaImage:
		if p.ImageURL == "" {
			return domain.Project{}, domain.Invalid("Image URL is required for image projects")
		}
		p.VideoURL = ""
	case domain.MediaVideo:
		if p.VideoURL == "" {
			return domain.Project{}, domain.Invalid("Video URL is required for video projects")
		}
		p.ImageURL = ""
	case domain.MediaVideoURL:
		if !isHTTPURL(p.VideoURL) {
			return domain.Project{}, domain.Invalid("A valid video URL is required")
		}
		p.ImageURL = ""
	case domain.MediaNone:
		p.ImageURL, p.VideoURL = "", ""
	}
	p.MediaType = kind

	if id, ok := domain.FileIDFromURL(p.Media().URL); ok && kind != domain.MediaVideoURL {
		if !domain.ValidID(id) {
			return domain.Project{}, domain.Invalid("Invalid file reference")
		}
		p.FileID = id
	}
	return p, nil
}

func fileRefError(p domain.Project, err error) error {
	if errors.Is(err, domain.ErrNotFound) && p.FileID != "" {
		return domain.Invalid("Referenced file does not exist")
	}
	return err
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
