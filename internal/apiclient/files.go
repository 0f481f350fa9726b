package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"dsignme/internal/domain"
)

// UploadedFile is the stored file together with its public URL.
type UploadedFile struct {
	domain.File
	URL string `json:"url"`
}

type uploadResponse struct {
	FileURL string       `json:"fileUrl"`
	Data    UploadedFile `json:"data"`
}

// UploadFile posts r as a multipart form. The call is bounded by the
// client's upload timeout regardless of ctx.
func (c *Client) UploadFile(ctx context.Context, kind domain.FileKind, filename string, r io.Reader) (UploadedFile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("type", string(kind)); err != nil {
		return UploadedFile{}, fmt.Errorf("write type field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadedFile{}, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadedFile{}, fmt.Errorf("close multipart: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()
	raw, err := c.send(ctx, http.MethodPost, "/projects/files", &buf, mw.FormDataContentType(), true, true)
	if err != nil {
		return UploadedFile{}, err
	}
	var resp uploadResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return UploadedFile{}, fmt.Errorf("decode upload: %w", err)
	}
	if resp.Data.URL == "" {
		resp.Data.URL = resp.FileURL
	}
	return resp.Data, nil
}

// GetFile downloads a stored file.
func (c *Client) GetFile(ctx context.Context, id string) ([]byte, error) {
	return c.send(ctx, http.MethodGet, "/files/"+url.PathEscape(id), nil, "", false, false)
}

// FileURL is the public URL of a stored file.
func (c *Client) FileURL(id string) string {
	return c.baseURL + "/files/" + url.PathEscape(id)
}
