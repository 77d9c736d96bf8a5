package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Simplici0/plotshare/internal/auth"
	"github.com/Simplici0/plotshare/internal/config"
	"github.com/Simplici0/plotshare/internal/db"
	"github.com/Simplici0/plotshare/internal/migrations"
	"github.com/Simplici0/plotshare/internal/presets"
)

const (
	testAdminEmail    = "admin@plotshare.in"
	testAdminPassword = "12345"
)

func newTestServer(t *testing.T) *server {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "server.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(ctx, database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, testAdminEmail, auth.HashPassword(testAdminPassword)); err != nil {
		t.Fatalf("insert admin: %v", err)
	}

	return &server{
		auth:     auth.NewService(database, "test-secret"),
		presets:  presets.NewStore(database),
		defaults: config.DefaultFormDefaults(),
	}
}

func serve(t *testing.T, srv *server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	srv.routes(false).ServeHTTP(rr, req)
	return rr
}

func loginCookies(t *testing.T, srv *server) []*http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", testAdminEmail)
	form.Set("password", testAdminPassword)
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := serve(t, srv, req)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("login status=%d, want %d", rr.Code, http.StatusSeeOther)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login did not set a session cookie")
	}
	return cookies
}

func assertContains(t *testing.T, body string, expected ...string) {
	t.Helper()

	for _, want := range expected {
		if !strings.Contains(body, want) {
			t.Fatalf("expected body to contain %q, got: %s", want, body)
		}
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
