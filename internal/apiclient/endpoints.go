package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"dsignme/internal/domain"
)

type RegisterRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Data  struct {
		Token string `json:"token"`
	} `json:"data"`
}

// ProjectInput is the body of project create and update calls.
type ProjectInput struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// ServiceStepInput is the body of service step create and update calls.
type ServiceStepInput struct {
	CategoryID string            `json:"categoryId"`
	Title      string            `json:"title"`
	Subtitles  []domain.Subtitle `json:"subtitles"`
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	return c.request(ctx, http.MethodPost, "/auth/register", in, nil, false)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	raw, err := c.sendJSON(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, false)
	if err != nil {
		return "", err
	}
	var resp loginResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode login: %w", err)
	}
	token := resp.Token
	if token == "" {
		token = resp.Data.Token
	}
	if token == "" {
		return "", &Error{Status: http.StatusBadGateway, Message: "Login response did not include a token"}
	}
	return token, nil
}

// ResetPassword changes the password of the signed-in user.
func (c *Client) ResetPassword(ctx context.Context, newPassword string) error {
	return c.request(ctx, http.MethodPost, "/auth/reset-password", map[string]string{"newPassword": newPassword}, nil, true)
}

// Verify asks the API whether token is live. A rejected token is reported
// as (false, nil); err is only set when no definite answer was obtained.
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := c.WithSession(StaticToken(token)).sendJSON(ctx, http.MethodPost, "/auth/verify", map[string]string{"token": token}, true)
	switch {
	case err == nil:
		return true, nil
	case IsStatus(err, http.StatusUnauthorized), IsStatus(err, http.StatusForbidden):
		return false, nil
	}
	return false, err
}

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.request(ctx, http.MethodGet, "/projects/categories", nil, &out, true)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, name string) (domain.Category, error) {
	var out domain.Category
	err := c.request(ctx, http.MethodPost, "/projects/categories", map[string]string{"nameCategory": name}, &out, true)
	return out, err
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (domain.Category, error) {
	var out domain.Category
	err := c.request(ctx, http.MethodPut, "/projects/categories/"+url.PathEscape(id), map[string]string{"nameCategory": name}, &out, true)
	return out, err
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/projects/categories/"+url.PathEscape(id), nil, nil, true)
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out []domain.Project
	err := c.request(ctx, http.MethodGet, "/projects/", nil, &out, true)
	return out, err
}

func (c *Client) ListProjectsByCategory(ctx context.Context, category string) ([]domain.Project, error) {
	var out []domain.Project
	err := c.request(ctx, http.MethodGet, "/projects/"+categoryPath(category), nil, &out, true)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, category string, in ProjectInput) (domain.Project, error) {
	var out domain.Project
	err := c.request(ctx, http.MethodPost, "/projects/"+categoryPath(category), in, &out, true)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, category, id string, in ProjectInput) (domain.Project, error) {
	var out domain.Project
	err := c.request(ctx, http.MethodPut, "/projects/"+categoryPath(category)+"/"+url.PathEscape(id), in, &out, true)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, category, id string) error {
	return c.request(ctx, http.MethodDelete, "/projects/"+categoryPath(category)+"/"+url.PathEscape(id), nil, nil, true)
}

func stepsPath(category string) string {
	return "/servicesteps/" + categoryPath(category) + "/service-steps"
}

func (c *Client) ListServiceSteps(ctx context.Context, category string) ([]domain.ServiceStep, error) {
	var out []domain.ServiceStep
	err := c.request(ctx, http.MethodGet, stepsPath(category), nil, &out, true)
	return out, err
}

func (c *Client) GetServiceStep(ctx context.Context, category, id string) (domain.ServiceStep, error) {
	var out domain.ServiceStep
	err := c.request(ctx, http.MethodGet, stepsPath(category)+"/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

func (c *Client) CreateServiceStep(ctx context.Context, category string, in ServiceStepInput) (domain.ServiceStep, error) {
	var out domain.ServiceStep
	err := c.request(ctx, http.MethodPost, stepsPath(category), in, &out, true)
	return out, err
}

func (c *Client) UpdateServiceStep(ctx context.Context, category, id string, in ServiceStepInput) (domain.ServiceStep, error) {
	var out domain.ServiceStep
	err := c.request(ctx, http.MethodPut, stepsPath(category)+"/"+url.PathEscape(id), in, &out, true)
	return out, err
}

func (c *Client) DeleteServiceStep(ctx context.Context, category, id string) error {
	return c.request(ctx, http.MethodDelete, stepsPath(category)+"/"+url.PathEscape(id), nil, nil, true)
}

func (c *Client) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	var out []domain.Contact
	err := c.request(ctx, http.MethodGet, "/contacts", nil, &out, true)
	return out, err
}

func (c *Client) SubmitContact(ctx context.Context, in ContactInput) (domain.Contact, error) {
	var out domain.Contact
	err := c.request(ctx, http.MethodPost, "/contacts", in, &out, false)
	return out, err
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body any, auth bool) ([]byte, error) {
	buf, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	return c.send(ctx, method, path, bytes.NewReader(buf), "application/json", true, auth)
}
