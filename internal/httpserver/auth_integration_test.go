package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"dsignme/internal/db/dbtest"
	"dsignme/internal/logging"
	categoryrepo "dsignme/internal/repository/category"
	contactrepo "dsignme/internal/repository/contact"
	filerepo "dsignme/internal/repository/file"
	projectrepo "dsignme/internal/repository/project"
	steprepo "dsignme/internal/repository/servicestep"
	tokenrepo "dsignme/internal/repository/token"
	userrepo "dsignme/internal/repository/user"
	accesssvc "dsignme/internal/service/access"
	accountsvc "dsignme/internal/service/account"
	categorysvc "dsignme/internal/service/category"
	contactsvc "dsignme/internal/service/contact"
	filesvc "dsignme/internal/service/file"
	projectsvc "dsignme/internal/service/project"
	stepsvc "dsignme/internal/service/servicestep"
)

func TestAuth_IntegrationRegisterLoginReset(t *testing.T) {
	pool := dbtest.Pool(t)
	gin.SetMode(gin.TestMode)

	access := accesssvc.New(tokenrepo.NewPostgres(pool), nil)
	categories := categorysvc.New(categoryrepo.NewPostgres(pool))
	files := filerepo.NewPostgres(pool)
	router, err := buildRouter(logging.Discard(), pool, Deps{
		CategorySvc: categories,
		ProjectSvc:  projectsvc.New(projectrepo.NewPostgres(pool), files, categories, nil),
		StepSvc:     stepsvc.New(steprepo.NewPostgres(pool), categories),
		FileSvc:     filesvc.New(files, nil),
		ContactSvc:  contactsvc.New(contactrepo.NewPostgres(pool, nil), nil),
		AccountSvc:  accountsvc.New(userrepo.NewPostgres(pool), access, nil),
		Tokens:      access,
	}, Options{AllowRegistration: true})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	send := func(path, body, token string) (int, map[string]any) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code, decode(t, rec)
	}

	if code, body := send("/auth/register", `{"email":"Admin@Example.com","password":"correct horse"}`, ""); code != http.StatusCreated {
		t.Fatalf("register: %d %v", code, body)
	}
	if code, _ := send("/auth/register", `{"email":"admin@example.com","password":"correct horse"}`, ""); code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate email, got %d", code)
	}

	code, body := send("/auth/login", `{"email":"admin@example.com","password":"correct horse"}`, "")
	token, _ := body["token"].(string)
	if code != http.StatusOK || token == "" {
		t.Fatalf("login: %d %v", code, body)
	}
	if code, body := send("/auth/verify", `{"token":"`+token+`"}`, ""); code != http.StatusOK {
		t.Fatalf("issued token should verify: %d %v", code, body)
	}

	if code, _ := send("/auth/reset-password", `{"newPassword":"battery staple"}`, token); code != http.StatusOK {
		t.Fatalf("reset: %d", code)
	}
	if code, _ := send("/auth/login", `{"email":"admin@example.com","password":"correct horse"}`, ""); code != http.StatusUnauthorized {
		t.Fatalf("old password must stop working, got %d", code)
	}
	if code, _ := send("/auth/login", `{"email":"admin@example.com","password":"battery staple"}`, ""); code != http.StatusOK {
		t.Fatalf("new password must work, got %d", code)
	}
}
