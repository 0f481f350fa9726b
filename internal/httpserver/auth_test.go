package httpserver

import (
	"net/http"
	"testing"
)

func TestRegister_DisabledByDefault(t *testing.T) {
	f := newFixture(t, Options{})
	rec := f.do(http.MethodPost, "/auth/register", `{"email":"new@example.com","password":"correct horse"}`, false)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	if len(f.accounts.registered) != 0 {
		t.Fatalf("registration must not reach the service: %v", f.accounts.registered)
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t, Options{AllowRegistration: true})

	rec := f.do(http.MethodPost, "/auth/register", `{"email":"new@example.com","password":"correct horse"}`, false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["message"] != "User created successfully" || body["data"].(map[string]any)["email"] != "new@example.com" {
		t.Fatalf("unexpected body %v", body)
	}

	rec = f.do(http.MethodPost, "/auth/register", `{"email":"taken@example.com","password":"correct horse"}`, false)
	if rec.Code != http.StatusConflict || decode(t, rec)["error"] != "User with this email already exists" {
		t.Fatalf("expected 409, got %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodPost, "/auth/register", `{"email":""}`, false)
	if rec.Code != http.StatusBadRequest || decode(t, rec)["error"] != "Email and password are required" {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"correct horse"}`, false)
	if rec.Code != http.StatusOK || decode(t, rec)["token"] != "issued-token" {
		t.Fatalf("expected token, got %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodPost, "/auth/login", `{"email":"admin@example.com","password":"nope"}`, false)
	if rec.Code != http.StatusUnauthorized || decode(t, rec)["error"] != "Invalid email or password" {
		t.Fatalf("expected 401, got %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodPost, "/auth/login", `not json`, false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t, Options{})

	rec := f.do(http.MethodPost, "/auth/reset-password", `{"newPassword":"new password"}`, false)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = f.do(http.MethodPost, "/auth/reset-password", `{"email":"other@example.com","newPassword":"new password"}`, true)
	if rec.Code != http.StatusForbidden || decode(t, rec)["error"] != "Cannot reset password for another user" {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(http.MethodPost, "/auth/reset-password", `{"email":"admin@example.com","newPassword":"new password"}`, true)
	if rec.Code != http.StatusOK || decode(t, rec)["message"] != "Password reset successfully" {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if f.accounts.resetFor != "user-1" || f.accounts.resetTo != "new password" {
		t.Fatalf("reset went to %q with %q", f.accounts.resetFor, f.accounts.resetTo)
	}
}
