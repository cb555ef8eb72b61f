package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPathParam(t *testing.T) {
	cases := []struct {
		path, prefix, suffix, want string
	}{
		{"/api/investments/inv_1/redeem", "/api/investments/", "/redeem", "inv_1"},
		{"/api/products/prod_9", "/api/products/", "", "prod_9"},
		{"/api/products/prod_9/description", "/api/products/", "", "prod_9"},
		{"/api/other/x", "/api/products/", "", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if got := PathParam(r, tc.prefix, tc.suffix); got != tc.want {
			t.Errorf("PathParam(%q, %q, %q) = %q, want %q", tc.path, tc.prefix, tc.suffix, got, tc.want)
		}
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/logs?page=3&bad=x", nil)
	if got := QueryInt(r, "page", 1); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := QueryInt(r, "bad", 7); got != 7 {
		t.Errorf("expected default 7, got %d", got)
	}
	if got := QueryInt(r, "absent", 1); got != 1 {
		t.Errorf("expected default 1, got %d", got)
	}
}

func TestQueryBool(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/products?include_inactive=true&bad=sure", nil)
	if !QueryBool(r, "include_inactive", false) {
		t.Error("expected true")
	}
	if QueryBool(r, "bad", false) {
		t.Error("expected default false for unparsable value")
	}
}

func TestRequireMethod_SetsAllowHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/api/health", nil)
	rec := httptest.NewRecorder()
	if RequireMethod(rec, r, http.MethodGet, http.MethodPost) {
		t.Fatal("expected false for disallowed method")
	}
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
	if rec.Header().Get("Allow") != "GET, POST" {
		t.Errorf("unexpected Allow header %q", rec.Header().Get("Allow"))
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(errors.New("product not found: x")) {
		t.Error("expected true for not found error")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Error("expected false for unrelated error")
	}
	if isNotFound(nil) {
		t.Error("expected false for nil")
	}
}
