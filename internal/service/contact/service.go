package contact

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"dsignme/internal/domain"
	"dsignme/internal/logging"
	"dsignme/internal/repository/contact"
)

// Input is a message submitted through the public contact form.
type Input struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=5000"`
}

type Service struct {
	repo     contact.Repository
	validate *validator.Validate
	logger   *logrus.Entry
}

func New(repo contact.Repository, logger *logrus.Entry) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logging.OrDiscard(logger),
	}
}

func (s *Service) Submit(ctx context.Context, in Input) (*domain.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)
	if err := s.validate.Struct(in); err != nil {
		return nil, domain.Invalid(contactMessage(err))
	}
	c, err := s.repo.Create(ctx, domain.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
		Status:  domain.ContactNew,
	})
	if err != nil {
		return nil, err
	}
	s.logger.WithField("contact_id", c.ID).Info("contact message received")
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Contact, error) {
	return s.repo.List(ctx)
}

func contactMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "Invalid contact message"
	}
	fe := verrs[0]
	switch {
	case fe.Field() == "Email" && fe.Tag() == "email":
		return "Email address is invalid"
	case fe.Tag() == "required":
		return fe.Field() + " is required"
	case fe.Tag() == "max":
		return fe.Field() + " is too long"
	}
	return "Invalid contact message"
}
