package domain

import "time"

// FileKind is the upload category a stored file was accepted under.
type FileKind string

const (
	FileImage FileKind = "image"
	FileVideo FileKind = "video"
)

// File is the metadata of an uploaded media file.
type File struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	Kind        FileKind  `json:"type"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadLimit holds the size cap and accepted content types of a file kind.
type UploadLimit struct {
	MaxBytes     int64
	ContentTypes []string
}

// UploadLimits are shared by the backend and the client-side checks.
var UploadLimits = map[FileKind]UploadLimit{
	FileImage: {MaxBytes: 10 << 20, ContentTypes: []string{"image/jpeg", "image/png"}},
	FileVideo: {MaxBytes: 50 << 20, ContentTypes: []string{"video/mp4", "video/webm"}},
}

// Accepts reports whether contentType is allowed for the limit.
func (l UploadLimit) Accepts(contentType string) bool {
	for _, ct := range l.ContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}
