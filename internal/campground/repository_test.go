package campground

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jharden/campgrounds/internal/apperror"
	"github.com/jharden/campgrounds/internal/db"
)

func testSetup(t *testing.T) (*Repository, *sql.DB, int64) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "campgrounds.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})

	res, err := d.Exec(
		"INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)",
		"camper", "camper@example.com", "x",
	)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	userID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	return NewRepository(d), d, userID
}

func insertCampground(t *testing.T, repo *Repository, authorID int64, title string) *Campground {
	t.Helper()
	c, err := repo.Insert(&Campground{
		Title:       title,
		Description: "A quiet spot in the pines",
		Location:    "Boulder, CO",
		Price:       15,
		Longitude:   -105.27,
		Latitude:    40.01,
		AuthorID:    authorID,
	})
	if err != nil {
		t.Fatalf("insert campground: %v", err)
	}
	return c
}

func TestInsertAndGetByID(t *testing.T) {
	repo, _, userID := testSetup(t)

	c := insertCampground(t, repo, userID, "Ridge View")
	if c.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if c.AuthorID != userID {
		t.Errorf("author = %d, want %d", c.AuthorID, userID)
	}
	if c.Author != "camper" {
		t.Errorf("author name = %q, want %q", c.Author, "camper")
	}

	got, err := repo.GetByID(c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != "Ridge View" {
		t.Errorf("title = %q, want %q", got.Title, "Ridge View")
	}
	if got.Price != 15 {
		t.Errorf("price = %v, want 15", got.Price)
	}
	if got.Location != "Boulder, CO" {
		t.Errorf("location = %q, want %q", got.Location, "Boulder, CO")
	}
	if got.Description != "A quiet spot in the pines" {
		t.Errorf("description round-trip mismatch: %q", got.Description)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	repo, _, _ := testSetup(t)

	_, err := repo.GetByID(9999)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestList(t *testing.T) {
	repo, _, userID := testSetup(t)

	insertCampground(t, repo, userID, "Ridge View")
	insertCampground(t, repo, userID, "Maple Hollow")

	campgrounds, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(campgrounds) != 2 {
		t.Fatalf("got %d campgrounds, want 2", len(campgrounds))
	}
	// Newest first
	if campgrounds[0].Title != "Maple Hollow" {
		t.Errorf("first = %q, want %q", campgrounds[0].Title, "Maple Hollow")
	}
}

func TestAuthorID(t *testing.T) {
	repo, _, userID := testSetup(t)
	c := insertCampground(t, repo, userID, "Ridge View")

	got, err := repo.AuthorID(c.ID)
	if err != nil {
		t.Fatalf("author id: %v", err)
	}
	if got != userID {
		t.Errorf("author = %d, want %d", got, userID)
	}

	_, err = repo.AuthorID(9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	repo, _, userID := testSetup(t)
	c := insertCampground(t, repo, userID, "Ridge View")

	err := repo.Update(c.ID, Form{
		Title:       "Ridge View Revised",
		Description: "Now with firepits",
		Location:    "Boulder, CO",
		Price:       20,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(c.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Title != "Ridge View Revised" {
		t.Errorf("title = %q, want updated title", got.Title)
	}
	if got.Price != 20 {
		t.Errorf("price = %v, want 20", got.Price)
	}
	if got.AuthorID != userID {
		t.Errorf("author changed to %d, must stay %d", got.AuthorID, userID)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo, _, _ := testSetup(t)

	err := repo.Update(9999, Form{Title: "X", Description: "Y", Location: "Z", Price: 1})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestAddAndRemoveImages(t *testing.T) {
	repo, _, userID := testSetup(t)
	c := insertCampground(t, repo, userID, "Ridge View")

	err := repo.AddImages(c.ID, []Image{
		{PublicID: "campgrounds/a", URL: "https://img.example.com/a"},
		{PublicID: "campgrounds/b", URL: "https://img.example.com/b"},
	})
	if err != nil {
		t.Fatalf("add images: %v", err)
	}

	images, err := repo.Images(c.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("got %d images, want 2", len(images))
	}
	if images[0].PublicID != "campgrounds/a" {
		t.Errorf("first image = %q, want submission order preserved", images[0].PublicID)
	}

	// Appending keeps order after existing images
	if err := repo.AddImages(c.ID, []Image{{PublicID: "campgrounds/c", URL: "https://img.example.com/c"}}); err != nil {
		t.Fatalf("append image: %v", err)
	}
	images, err = repo.Images(c.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 3 || images[2].PublicID != "campgrounds/c" {
		t.Fatalf("expected appended image last, got %+v", images)
	}

	if err := repo.RemoveImages(c.ID, []string{"campgrounds/a", "campgrounds/c"}); err != nil {
		t.Fatalf("remove images: %v", err)
	}
	images, err = repo.Images(c.ID)
	if err != nil {
		t.Fatalf("images: %v", err)
	}
	if len(images) != 1 || images[0].PublicID != "campgrounds/b" {
		t.Fatalf("expected only campgrounds/b left, got %+v", images)
	}
}

func TestDeleteCascadesReviews(t *testing.T) {
	repo, d, userID := testSetup(t)
	c := insertCampground(t, repo, userID, "Ridge View")

	for i := 0; i < 3; i++ {
		if _, err := d.Exec(
			"INSERT INTO reviews (campground_id, author_id, rating, body) VALUES (?, ?, ?, ?)",
			c.ID, userID, 4, "nice",
		); err != nil {
			t.Fatalf("insert review: %v", err)
		}
	}
	if err := repo.AddImages(c.ID, []Image{{PublicID: "campgrounds/a", URL: "https://img.example.com/a"}}); err != nil {
		t.Fatalf("add image: %v", err)
	}

	if err := repo.Delete(c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int
	if err := d.QueryRow("SELECT COUNT(*) FROM reviews WHERE campground_id = ?", c.ID).Scan(&count); err != nil {
		t.Fatalf("count reviews: %v", err)
	}
	if count != 0 {
		t.Errorf("reviews after delete = %d, want 0", count)
	}
	if err := d.QueryRow("SELECT COUNT(*) FROM campground_images WHERE campground_id = ?", c.ID).Scan(&count); err != nil {
		t.Fatalf("count images: %v", err)
	}
	if count != 0 {
		t.Errorf("images after delete = %d, want 0", count)
	}
	if _, err := repo.GetByID(c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("campground still retrievable after delete: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo, _, _ := testSetup(t)

	err := repo.Delete(9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
