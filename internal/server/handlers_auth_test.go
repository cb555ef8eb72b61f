package server

import (
	"net/http"
	"testing"
)

func TestSignupLoginMe_Flow(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/auth/signup", "", jsonBody(t, map[string]string{
		"email":    "New@Example.com",
		"name":     "New User",
		"password": "hunter2hunter2",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var signupResp struct {
		Token string `json:"token"`
		User  struct {
			UserID string `json:"user_id"`
			Email  string `json:"email"`
			Role   string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, rec, &signupResp)
	if signupResp.Token == "" {
		t.Fatal("signup: expected a token")
	}
	if signupResp.User.Email != "new@example.com" {
		t.Errorf("signup: expected lowercased email, got %q", signupResp.User.Email)
	}
	if signupResp.User.Role != "user" {
		t.Errorf("signup: expected role user, got %q", signupResp.User.Role)
	}

	rec = doRequest(srv, http.MethodPost, "/api/auth/login", "", jsonBody(t, map[string]string{
		"email":    "new@example.com",
		"password": "hunter2hunter2",
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	decodeBody(t, rec, &loginResp)

	rec = doRequest(srv, http.MethodGet, "/api/auth/me", loginResp.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
	}
	decodeBody(t, rec, &me)
	if me.UserID != signupResp.User.UserID || me.Email != "new@example.com" {
		t.Errorf("me: unexpected identity %+v", me)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t)

	body := map[string]string{"email": "dup@example.com", "password": "hunter2hunter2"}
	if rec := doRequest(srv, http.MethodPost, "/api/auth/signup", "", jsonBody(t, body)); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: expected 201, got %d", rec.Code)
	}
	if rec := doRequest(srv, http.MethodPost, "/api/auth/signup", "", jsonBody(t, body)); rec.Code != http.StatusConflict {
		t.Fatalf("second signup: expected 409, got %d", rec.Code)
	}
}

func TestSignup_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"missing email", map[string]string{"password": "hunter2hunter2"}},
		{"invalid email", map[string]string{"email": "nope", "password": "hunter2hunter2"}},
		{"short password", map[string]string{"email": "ok@example.com", "password": "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(srv, http.MethodPost, "/api/auth/signup", "", jsonBody(t, tc.body))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/auth/signup", "", jsonBody(t, map[string]string{
		"email": "user@example.com", "password": "hunter2hunter2",
	}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodPost, "/api/auth/login", "", jsonBody(t, map[string]string{
		"email": "user@example.com", "password": "wrong-password",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = doRequest(srv, http.MethodPost, "/api/auth/login", "", jsonBody(t, map[string]string{
		"email": "nobody@example.com", "password": "hunter2hunter2",
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", rec.Code)
	}
}

func TestMe_RequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
