package geocode

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestForward(t *testing.T) {
	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-105.27,40.01]}}]}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	p, err := c.Forward("Boulder, CO")
	if err != nil {
		t.Fatalf("forward: %v", err)
	}
	if p.Longitude != -105.27 {
		t.Errorf("longitude = %v, want -105.27", p.Longitude)
	}
	if p.Latitude != 40.01 {
		t.Errorf("latitude = %v, want 40.01", p.Latitude)
	}
	if !strings.Contains(gotPath, "Boulder") {
		t.Errorf("path = %q, want location in path", gotPath)
	}
	if gotToken != "test-token" {
		t.Errorf("token = %q, want test-token", gotToken)
	}
}

func TestForwardNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(`{"features":[]}`)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	if _, err := c.Forward("Nowhere, XX"); err == nil {
		t.Fatal("expected error for empty feature list")
	}
}

func TestForwardServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	if _, err := c.Forward("Boulder, CO"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestNewClientRequiresToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestForwardRequiresLocation(t *testing.T) {
	c, err := NewClient("test-token")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Forward(""); err == nil {
		t.Fatal("expected error for empty location")
	}
}
