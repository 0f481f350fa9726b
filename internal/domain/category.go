package domain

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups projects and service steps. Its name doubles as a URL path segment.
type Category struct {
	ID           string     `json:"id"`
	NameCategory string     `json:"nameCategory"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

var categoryNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} _-]*$`)

// NormalizeCategoryName title-cases the lower-cased, trimmed name.
// "logo DESIGN" and "Logo design" both become "Logo Design".
func NormalizeCategoryName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	return cases.Title(language.Und).String(strings.ToLower(name))
}

// ValidCategoryName reports whether name can be used as a path segment.
func ValidCategoryName(name string) bool {
	return categoryNamePattern.MatchString(name)
}

// CategorySlug is the path segment clients use for a category name.
func CategorySlug(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
