package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthRoute(t *testing.T) {
	s := New("127.0.0.1:0")
	w := httptest.NewRecorder()
	s.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestVersionRoute(t *testing.T) {
	s := New("127.0.0.1:0")
	w := httptest.NewRecorder()
	s.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["version"] == "" {
		t.Fatal("version field is empty")
	}
}

func TestSessionsRouteEmpty(t *testing.T) {
	s := New("127.0.0.1:0")
	w := httptest.NewRecorder()
	s.router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var list []SessionInfo
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("sessions = %v, want empty", list)
	}
}

func TestQueryIntFallback(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 80},
		{"cols=120", 120},
		{"cols=abc", 80},
		{"cols=-3", 80},
		{"cols=0", 80},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/ws/terminal?"+tc.query, nil)
		if got := queryInt(r, "cols", 80); got != tc.want {
			t.Fatalf("queryInt(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
