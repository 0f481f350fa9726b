package apiclient

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"dsignme/internal/domain"
)

// FormError is a client-side validation failure. Nothing was sent.
type FormError struct {
	Field   string
	Message string
}

func (e *FormError) Error() string { return e.Message }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("category_name", func(fl validator.FieldLevel) bool {
		return domain.ValidCategoryName(domain.NormalizeCategoryName(fl.Field().String()))
	})
	v.RegisterStructValidation(projectMedia, ProjectForm{})
	return v
}

// CategoryForm is the category create and rename form.
type CategoryForm struct {
	Name string `validate:"required,category_name"`
}

// ProjectForm is the project create and edit form. Exactly one media source
// must be given for image and video projects.
type ProjectForm struct {
	CategoryID string `validate:"required"`
	Title      string `validate:"max=200"`
	Type       string `validate:"omitempty,oneof=image video videoUrl none"`
	ImageURL   string `validate:"omitempty,url"`
	VideoURL   string `validate:"omitempty,url"`
}

func projectMedia(sl validator.StructLevel) {
	f := sl.Current().Interface().(ProjectForm)
	if f.ImageURL != "" && f.VideoURL != "" {
		sl.ReportError(f.VideoURL, "VideoURL", "VideoURL", "single_media", "")
	}
	switch f.Type {
	case "image":
		if f.ImageURL == "" {
			sl.ReportError(f.ImageURL, "ImageURL", "ImageURL", "required", "")
		}
	case "video", "videoUrl":
		if f.VideoURL == "" {
			sl.ReportError(f.VideoURL, "VideoURL", "VideoURL", "required", "")
		}
	}
}

// Input is the request body for the form.
func (f ProjectForm) Input() ProjectInput {
	return ProjectInput{Type: f.Type, Title: strings.TrimSpace(f.Title), ImageURL: f.ImageURL, VideoURL: f.VideoURL}
}

// ServiceStepForm mirrors the backend rule: a title and some content.
type ServiceStepForm struct {
	CategoryID string `validate:"required"`
	Title      string `validate:"required"`
	Subtitles  []domain.Subtitle
}

func (f ServiceStepForm) Input() ServiceStepInput {
	return ServiceStepInput{CategoryID: f.CategoryID, Title: strings.TrimSpace(f.Title), Subtitles: domain.CleanSubtitles(f.Subtitles)}
}

// UploadForm describes a file before it is sent.
type UploadForm struct {
	Kind        domain.FileKind `validate:"required,oneof=image video"`
	Filename    string          `validate:"required"`
	ContentType string
	Size        int64 `validate:"gt=0"`
}

// Validate checks a form and returns a *FormError describing the first
// problem.
func Validate(form any) error {
	switch f := form.(type) {
	case CategoryForm:
		f.Name = strings.TrimSpace(f.Name)
		return first(validate.Struct(f))
	case ServiceStepForm:
		f.Title = strings.TrimSpace(f.Title)
		if err := first(validate.Struct(f)); err != nil {
			return err
		}
		if !domain.HasContent(f.Subtitles) {
			return &FormError{Field: "Subtitles", Message: "At least one subtitle or heading is required"}
		}
		return nil
	case UploadForm:
		if err := first(validate.Struct(f)); err != nil {
			return err
		}
		limit := domain.UploadLimits[f.Kind]
		if f.Size > limit.MaxBytes {
			return &FormError{Field: "Size", Message: fmt.Sprintf("File is too large. Maximum size is %dMB", limit.MaxBytes>>20)}
		}
		if f.ContentType != "" && !limit.Accepts(f.ContentType) {
			return &FormError{Field: "ContentType", Message: "Invalid file type. Allowed types: " + strings.Join(limit.ContentTypes, ", ")}
		}
		return nil
	default:
		return first(validate.Struct(form))
	}
}

var fieldLabels = map[string]string{
	"Name":       "Category name",
	"CategoryID": "Category",
	"Title":      "Title",
	"Type":       "Project type",
	"ImageURL":   "Image URL",
	"VideoURL":   "Video URL",
	"Kind":       "File type",
	"Filename":   "File name",
	"Size":       "File",
}

func first(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &FormError{Message: err.Error()}
	}
	fe := verrs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	msg := label + " is invalid"
	switch fe.Tag() {
	case "required":
		msg = label + " is required"
	case "gt":
		msg = label + " is empty"
	case "url":
		msg = label + " must be a valid URL"
	case "oneof":
		msg = label + " must be one of: " + fe.Param()
	case "max":
		msg = label + " is too long"
	case "category_name":
		msg = "Category name may only contain letters, numbers, spaces, - and _"
	case "single_media":
		msg = "Provide either an image or a video, not both"
	}
	return &FormError{Field: fe.Field(), Message: msg}
}
