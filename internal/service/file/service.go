package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	filerepo "dsignme/internal/repository/file"
)

type Service struct {
	repo   filerepo.Repository
	logger *logrus.Entry
}

func New(repo filerepo.Repository, logger *logrus.Entry) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger)}
}

// Upload stores the content read from r after checking it against the
// limits of kind. The content type is sniffed, never taken from the client.
func (s *Service) Upload(ctx context.Context, kind, filename string, r io.Reader) (*domain.File, error) {
	fk := domain.FileKind(strings.ToLower(strings.TrimSpace(kind)))
	limit, ok := domain.UploadLimits[fk]
	if !ok {
		return nil, domain.Invalid("File type must be image or video")
	}

	data, err := io.ReadAll(io.LimitReader(r, limit.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, domain.Invalid("File is empty")
	}
	if int64(len(data)) > limit.MaxBytes {
		return nil, domain.Invalid(fmt.Sprintf("File is too large. Maximum size is %dMB", limit.MaxBytes>>20))
	}

	detected := mimetype.Detect(data)
	contentType := ""
	for _, ct := range limit.ContentTypes {
		if detected.Is(ct) {
			contentType = ct
			break
		}
	}
	if contentType == "" {
		s.logger.WithFields(logrus.Fields{"kind": fk, "detected": detected.String()}).Info("upload rejected")
		return nil, domain.Invalid("Invalid file type. Allowed types: " + strings.Join(limit.ContentTypes, ", "))
	}

	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) {
		name = "upload" + detected.Extension()
	}

	return s.repo.Create(ctx, domain.File{
		Filename:    name,
		Kind:        fk,
		ContentType: contentType,
	}, data)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.File, []byte, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
