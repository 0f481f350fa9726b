package domain

import (
	"strings"
	"time"
)

// Subtitle is one ordered group of a service step: a line of text and its headings.
type Subtitle struct {
	Text     string   `json:"text"`
	Headings []string `json:"headings"`
}

// ServiceStep describes one step of a service offering within a category.
type ServiceStep struct {
	ID         string     `json:"_id"`
	CategoryID string     `json:"categoryId"`
	Title      string     `json:"title"`
	Subtitles  []Subtitle `json:"subtitles"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// HasContent reports whether at least one subtitle carries text or a non-empty heading.
func HasContent(subtitles []Subtitle) bool {
	for _, s := range subtitles {
		if strings.TrimSpace(s.Text) != "" {
			return true
		}
		for _, h := range s.Headings {
			if strings.TrimSpace(h) != "" {
				return true
			}
		}
	}
	return false
}

// CleanSubtitles drops empty headings and subtitles left with neither text nor headings.
func CleanSubtitles(subtitles []Subtitle) []Subtitle {
	out := make([]Subtitle, 0, len(subtitles))
	for _, s := range subtitles {
		headings := make([]string, 0, len(s.Headings))
		for _, h := range s.Headings {
			if h = strings.TrimSpace(h); h != "" {
				headings = append(headings, h)
			}
		}
		text := strings.TrimSpace(s.Text)
		if text == "" && len(headings) == 0 {
			continue
		}
		out = append(out, Subtitle{Text: text, Headings: headings})
	}
	return out
}
