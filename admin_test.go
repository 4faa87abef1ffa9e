package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dtrivino/portfolio/internal/store"
)

func adminRequest(s *site, method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: s.admin.token})
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminRequiresLogin(t *testing.T) {
	_, _, r := newTestSite(t)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/messages", "/admin/visitors"} {
		w := get(r, path)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Errorf("GET %s = %d -> %q, want redirect to login", path, w.Code, w.Header().Get("Location"))
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	if w := serve(r, req); w.Code != http.StatusFound {
		t.Errorf("forged cookie status = %d", w.Code)
	}
}

func TestAdminLogin(t *testing.T) {
	s, _, r := newTestSite(t)

	w := postForm(r, "/admin/login", url.Values{"username": {"owner"}, "password": {"wrong"}})
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Fatalf("bad login = %d %s", w.Code, w.Body.String())
	}

	w = postForm(r, "/admin/login", url.Values{"username": {"owner"}, "password": {"s3cret"}})
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
		t.Fatalf("login = %d -> %q", w.Code, w.Header().Get("Location"))
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			token = c.Value
		}
	}
	if token != s.admin.token {
		t.Fatalf("login cookie = %q, want session token", token)
	}

	w = get(r, "/admin/logout")
	if w.Code != http.StatusFound {
		t.Errorf("logout status = %d", w.Code)
	}
}

func TestAdminPages(t *testing.T) {
	s, _, r := newTestSite(t)
	ctx := context.Background()
	if _, err := s.store.SaveMessage(ctx, store.Message{Name: "Ada", Email: "ada@example.com", Subject: "Engine work", Body: "hi", Timestamp: fixedNow}); err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	get(r, "/")

	pages := map[string]string{
		"/admin/dashboard": "Total visitors",
		"/admin/messages":  "Engine work",
		"/admin/visitors":  "<td>/</td>",
	}
	for path, want := range pages {
		w := serve(r, adminRequest(s, http.MethodGet, path))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), want) {
			t.Errorf("GET %s = %d, missing %q", path, w.Code, want)
		}
	}

	w := serve(r, adminRequest(s, http.MethodGet, "/admin/api/stats"))
	var stats store.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalVisitors != 1 || stats.TotalMessages != 1 {
		t.Errorf("stats = %+v", stats)
	}

	w = serve(r, adminRequest(s, http.MethodGet, "/admin/export/stats"))
	if !strings.Contains(w.Header().Get("Content-Disposition"), "admin-stats.json") {
		t.Errorf("export headers = %v", w.Header())
	}
}

func TestAdminDeleteMessage(t *testing.T) {
	s, _, r := newTestSite(t)
	id, err := s.store.SaveMessage(context.Background(), store.Message{Name: "n", Email: "e@x.io", Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}

	tests := []struct {
		path string
		want int
	}{
		{"/admin/messages/abc", http.StatusBadRequest},
		{"/admin/messages/999", http.StatusNotFound},
		{"/admin/messages/" + strconv.FormatInt(id, 10), http.StatusOK},
		{"/admin/messages/" + strconv.FormatInt(id, 10), http.StatusNotFound},
	}
	for _, tt := range tests {
		if w := serve(r, adminRequest(s, http.MethodDelete, tt.path)); w.Code != tt.want {
			t.Errorf("DELETE %s = %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestAdminPrivacyCleanup(t *testing.T) {
	s, _, r := newTestSite(t)
	ctx := context.Background()
	for _, ts := range []time.Time{fixedNow.Add(-48 * time.Hour), fixedNow.Add(-time.Hour)} {
		if err := s.store.RecordVisit(ctx, store.Visit{HashedIP: "h", Path: "/", Timestamp: ts}); err != nil {
			t.Fatalf("RecordVisit: %v", err)
		}
	}

	w := serve(r, adminRequest(s, http.MethodPost, "/admin/privacy/cleanup"))
	if w.Code != http.StatusOK {
		t.Fatalf("cleanup status = %d", w.Code)
	}
	visits, err := s.store.RecentVisits(ctx, 10)
	if err != nil {
		t.Fatalf("RecentVisits: %v", err)
	}
	if len(visits) != 1 {
		t.Errorf("visits after cleanup = %d, want 1", len(visits))
	}
}

func TestHashIP(t *testing.T) {
	a, err := newAdminAuth("u", "p")
	if err != nil {
		t.Fatalf("newAdminAuth: %v", err)
	}
	h := a.hashIP("203.0.113.7")
	if len(h) != 16 || h != a.hashIP("203.0.113.7") {
		t.Errorf("hashIP not stable: %q", h)
	}
	if h == a.hashIP("203.0.113.8") {
		t.Error("different addresses hashed alike")
	}

	b, _ := newAdminAuth("u", "p")
	if b.hashIP("203.0.113.7") == h {
		t.Error("salt did not change the hash")
	}
}
