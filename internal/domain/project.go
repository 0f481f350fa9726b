package domain

import (
	"strings"
	"time"
)

// MediaKind tags what a project displays.
type MediaKind string

const (
	MediaImage    MediaKind = "image"
	MediaVideo    MediaKind = "video"
	MediaVideoURL MediaKind = "videoUrl"
	MediaNone     MediaKind = "none"
)

// Valid reports whether k is one of the known kinds.
func (k MediaKind) Valid() bool {
	switch k {
	case MediaImage, MediaVideo, MediaVideoURL, MediaNone:
		return true
	}
	return false
}

// Media is the explicit form of a project's media: which kind, and where it lives.
type Media struct {
	Kind MediaKind `json:"kind"`
	URL  string    `json:"url,omitempty"`
}

// Project is a portfolio entry filed under one category.
type Project struct {
	ID         string    `json:"id"`
	Title      string    `json:"title,omitempty"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	VideoURL   string    `json:"videoUrl,omitempty"`
	CategoryID string    `json:"categoryId"`
	MediaType  MediaKind `json:"mediaType,omitempty"`
	FileID     string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Media returns the tagged media of the project. The stored MediaType wins;
// without it the kind is derived from whichever URL field is populated.
func (p Project) Media() Media {
	switch p.MediaType {
	case MediaImage:
		return Media{Kind: MediaImage, URL: p.ImageURL}
	case MediaVideo, MediaVideoURL:
		return Media{Kind: p.MediaType, URL: p.VideoURL}
	case MediaNone:
		return Media{Kind: MediaNone}
	}
	return DeriveMedia(p.ImageURL, p.VideoURL)
}

// DeriveMedia infers the media kind from the URL fields alone. Video URLs
// pointing at stored files are uploaded videos; anything else is an external link.
func DeriveMedia(imageURL, videoURL string) Media {
	switch {
	case strings.TrimSpace(imageURL) != "":
		return Media{Kind: MediaImage, URL: imageURL}
	case strings.TrimSpace(videoURL) != "":
		if IsStoredFileURL(videoURL) {
			return Media{Kind: MediaVideo, URL: videoURL}
		}
		return Media{Kind: MediaVideoURL, URL: videoURL}
	}
	return Media{Kind: MediaNone}
}

// IsStoredFileURL reports whether url points at the backend's file route.
func IsStoredFileURL(url string) bool {
	return strings.Contains(url, "/files/")
}

// FileIDFromURL extracts the trailing id of a stored file URL.
func FileIDFromURL(url string) (string, bool) {
	if !IsStoredFileURL(url) {
		return "", false
	}
	id := url[strings.LastIndex(url, "/files/")+len("/files/"):]
	id = strings.Trim(id, "/")
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
