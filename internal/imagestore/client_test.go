package imagestore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	var gotPublicID, gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/upload" {
			t.Errorf("path = %q, want /image/upload", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotPublicID = r.FormValue("public_id")
		if files := r.MultipartForm.File["file"]; len(files) == 1 {
			gotFilename = files[0].Filename
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(Image{
			PublicID: gotPublicID,
			URL:      "https://img.example.com/" + gotPublicID,
		}); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	c, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	img, err := c.Upload("tent.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !strings.HasPrefix(img.PublicID, "campgrounds/") {
		t.Errorf("public id = %q, want campgrounds/ prefix", img.PublicID)
	}
	if img.URL == "" {
		t.Error("expected a URL")
	}
	if gotFilename != "tent.jpg" {
		t.Errorf("filename = %q, want tent.jpg", gotFilename)
	}
}

func TestUploadIDsAreUnique(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		if err := json.NewEncoder(w).Encode(Image{
			PublicID: r.FormValue("public_id"),
			URL:      "https://img.example.com/x",
		}); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer srv.Close()

	c, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	a, err := c.Upload("a.jpg", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("upload a: %v", err)
	}
	b, err := c.Upload("b.jpg", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("upload b: %v", err)
	}
	if a.PublicID == b.PublicID {
		t.Error("two uploads should get distinct public ids")
	}
}

func TestDestroy(t *testing.T) {
	var gotPublicID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/destroy" {
			t.Errorf("path = %q, want /image/destroy", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotPublicID = r.FormValue("public_id")
	}))
	defer srv.Close()

	c, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	if err := c.Destroy("campgrounds/abc123"); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if gotPublicID != "campgrounds/abc123" {
		t.Errorf("public id = %q, want campgrounds/abc123", gotPublicID)
	}
}

func TestDestroyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	SetTestURL(c, srv.URL)

	if err := c.Destroy("campgrounds/abc123"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
