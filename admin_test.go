package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func login(t *testing.T, r http.Handler) *http.Cookie {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/admin/login", url.Values{"username": {"root"}, "password": {"s3cret"}})
	if w.Code != http.StatusFound {
		t.Fatalf("login status: got %d, want 302", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			return c
		}
	}
	t.Fatal("login did not set the admin cookie")
	return nil
}

func TestAdmin_LoginRejectsBadCredentials(t *testing.T) {
	_, r := newTestServer(t)

	w := doRequest(r, http.MethodPost, "/admin/login", url.Values{"username": {"root"}, "password": {"wrong"}})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Error("error message not rendered")
	}
}

func TestAdmin_RequiresCookie(t *testing.T) {
	_, r := newTestServer(t)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats", "/admin/messages"} {
		w := doRequest(r, http.MethodGet, path, nil)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Errorf("GET %s: status %d location %q", path, w.Code, w.Header().Get("Location"))
		}
	}

	forged := &http.Cookie{Name: adminCookie, Value: "forged"}
	if w := doRequest(r, http.MethodGet, "/admin/dashboard", nil, forged); w.Code != http.StatusFound {
		t.Errorf("forged cookie: status %d, want 302", w.Code)
	}
}

func TestAdmin_Dashboard(t *testing.T) {
	s, r := newTestServer(t)
	s.store.RecordVisit("abc", "ua", "/", time.Now())
	s.store.SaveMessage("Ada", "ada@example.com", "hello", time.Now())
	cookie := login(t, r)

	w := doRequest(r, http.MethodGet, "/admin/dashboard", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status: got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ada") {
		t.Error("recent message missing from dashboard")
	}

	w = doRequest(r, http.MethodGet, "/admin/api/stats", nil, cookie)
	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats.TotalVisitors != 1 || stats.TotalMessages != 1 || stats.UndeliveredMessages != 1 {
		t.Errorf("stats: got %+v", stats)
	}

	w = doRequest(r, http.MethodGet, "/admin/export/stats", nil, cookie)
	if got := w.Header().Get("Content-Disposition"); got != "attachment; filename=admin-stats.json" {
		t.Errorf("export Content-Disposition: got %q", got)
	}

	for _, path := range []string{"/admin/visitors", "/admin/messages"} {
		if w := doRequest(r, http.MethodGet, path, nil, cookie); w.Code != http.StatusOK {
			t.Errorf("GET %s: status %d", path, w.Code)
		}
	}
}

func TestAdmin_DeleteMessage(t *testing.T) {
	s, r := newTestServer(t)
	id, _ := s.store.SaveMessage("Ada", "ada@example.com", "hello", time.Now())
	cookie := login(t, r)
	path := "/admin/messages/" + strconv.FormatInt(id, 10)

	if w := doRequest(r, http.MethodDelete, path, nil, cookie); w.Code != http.StatusOK {
		t.Errorf("delete: status %d", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, path, nil, cookie); w.Code != http.StatusNotFound {
		t.Errorf("second delete: status %d, want 404", w.Code)
	}
	if w := doRequest(r, http.MethodDelete, "/admin/messages/abc", nil, cookie); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d, want 400", w.Code)
	}
}

func TestAdmin_Logout(t *testing.T) {
	_, r := newTestServer(t)
	cookie := login(t, r)

	w := doRequest(r, http.MethodGet, "/admin/logout", nil, cookie)
	if w.Code != http.StatusFound {
		t.Fatalf("logout status: got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie && c.MaxAge >= 0 {
			t.Errorf("admin cookie not cleared: %+v", c)
		}
	}
}

func TestHashIP(t *testing.T) {
	a := newAdminAuth(testConfig())
	b := newAdminAuth(testConfig())

	h := a.hashIP("203.0.113.7")
	if len(h) != 16 {
		t.Errorf("hash length: got %d, want 16", len(h))
	}
	if h != a.hashIP("203.0.113.7") {
		t.Error("hash not stable within a process")
	}
	if h == a.hashIP("203.0.113.8") {
		t.Error("different IPs hashed alike")
	}
	if h == b.hashIP("203.0.113.7") {
		t.Error("salt not applied")
	}
	if strings.Contains(h, "203") {
		t.Error("raw IP leaked into hash")
	}
}

func TestTracked(t *testing.T) {
	tests := []struct {
		path string
		dnt  string
		want bool
	}{
		{"/", "", true},
		{"/work-content", "", true},
		{"/", "1", false},
		{"/static/starfield.css", "", false},
		{"/images/logo.png", "", false},
		{"/admin/dashboard", "", false},
		{"/api/stars", "", false},
		{"/privacy", "", false},
		{"/healthz", "", false},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.dnt != "" {
			c.Request.Header.Set("DNT", tt.dnt)
		}
		if got := tracked(c); got != tt.want {
			t.Errorf("tracked(%s, DNT=%q) = %v, want %v", tt.path, tt.dnt, got, tt.want)
		}
	}
}

func TestVisitorTracking_RecordsHashedVisit(t *testing.T) {
	s, r := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/work-content", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	req.Header.Set("User-Agent", "test-agent")
	r.ServeHTTP(httptest.NewRecorder(), req)

	// Visits are recorded in the background.
	deadline := time.Now().Add(2 * time.Second)
	for {
		visitors, err := s.store.RecentVisitors(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(visitors) == 1 {
			v := visitors[0]
			if v.HashedIP != s.admin.hashIP("198.51.100.4") || v.Path != "/work-content" || v.UserAgent != "test-agent" {
				t.Errorf("recorded visit: got %+v", v)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("visit not recorded, got %d rows", len(visitors))
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestCleanupOldVisitorData(t *testing.T) {
	s, _ := newTestServer(t)
	s.store.RecordVisit("old", "", "/", time.Now().Add(-2*365*24*time.Hour))
	s.store.RecordVisit("new", "", "/", time.Now())

	s.cleanupOldVisitorData()

	visitors, _ := s.store.RecentVisitors(10)
	if len(visitors) != 1 || visitors[0].HashedIP != "new" {
		t.Errorf("after cleanup: got %+v", visitors)
	}
}

func TestVisitorTracking_SkipsUnmatchedAndFailedRequests(t *testing.T) {
	s, r := newTestServer(t)

	doRequest(r, http.MethodGet, "/wp-login.php", nil)
	doRequest(r, http.MethodGet, "/images/logo.png", nil)
	doRequest(r, http.MethodPost, "/contact", url.Values{"email": {"bad"}})
	doRequest(r, http.MethodGet, "/work-content", nil)

	deadline := time.Now().Add(2 * time.Second)
	for {
		visitors, err := s.store.RecentVisitors(10)
		if err != nil {
			t.Fatal(err)
		}
		if len(visitors) > 0 {
			if len(visitors) != 1 || visitors[0].Path != "/work-content" {
				for _, v := range visitors {
					t.Errorf("recorded visit path=%s", v.Path)
				}
				t.Fatalf("got %d recorded visits, want only /work-content", len(visitors))
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("successful page view not recorded")
		}
		time.Sleep(10 * time.Millisecond)
	}

	stats, err := s.store.AdminStats()
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range stats.TopPaths {
		if p.Path != "/work-content" {
			t.Errorf("unexpected top path %q", p.Path)
		}
	}
}

func TestAdmin_DeleteMessageStorageFailure(t *testing.T) {
	s, r := newTestServer(t)
	cookie := login(t, r)
	s.store.Close()

	if err := s.store.DeleteMessage(1); err == nil || errors.Is(err, errMessageNotFound) {
		t.Errorf("DeleteMessage on closed store: got %v, want a storage error", err)
	}
	if w := doRequest(r, http.MethodDelete, "/admin/messages/1", nil, cookie); w.Code != http.StatusInternalServerError {
		t.Errorf("delete on closed store: status %d, want 500", w.Code)
	}
}

func TestRetentionText(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{8760 * time.Hour, "1 year"},
		{2 * 8760 * time.Hour, "2 years"},
		{720 * time.Hour, "30 days"},
		{24 * time.Hour, "1 day"},
		{36 * time.Hour, "36h0m0s"},
	}
	for _, tt := range tests {
		if got := retentionText(tt.in); got != tt.want {
			t.Errorf("retentionText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrivacyPage_ReadableRetention(t *testing.T) {
	_, r := newTestServer(t)

	body := doRequest(r, http.MethodGet, "/privacy", nil).Body.String()
	if !strings.Contains(body, "deleted after 1 year") {
		t.Errorf("privacy page retention not readable:\n%s", body)
	}
	if strings.Contains(body, "8760h") {
		t.Error("privacy page shows a raw duration")
	}
}
