package seed

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jharden/campgrounds/internal/campground"
	"github.com/jharden/campgrounds/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing db: %v", err)
		}
	})
	return database
}

func TestRun(t *testing.T) {
	database := testDB(t)

	if err := Run(database, 5); err != nil {
		t.Fatalf("run: %v", err)
	}

	repo := campground.NewRepository(database)
	campgrounds, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(campgrounds) != 5 {
		t.Fatalf("got %d campgrounds, want 5", len(campgrounds))
	}

	for _, c := range campgrounds {
		if c.Title == "" {
			t.Error("expected a generated title")
		}
		if c.Location == "" {
			t.Error("expected a generated location")
		}
		if c.Price < 10 || c.Price > 29 {
			t.Errorf("price = %v, want between 10 and 29", c.Price)
		}
		if c.Longitude == 0 || c.Latitude == 0 {
			t.Error("expected coordinates from the city list")
		}
		if c.Author != "camper" {
			t.Errorf("author = %q, want camper", c.Author)
		}
		if len(c.Images) != 2 {
			t.Errorf("got %d images, want 2", len(c.Images))
		}
	}
}

func TestRunReplacesExisting(t *testing.T) {
	database := testDB(t)

	if err := Run(database, 3); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(database, 2); err != nil {
		t.Fatalf("second run: %v", err)
	}

	repo := campground.NewRepository(database)
	campgrounds, err := repo.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(campgrounds) != 2 {
		t.Fatalf("got %d campgrounds, want 2", len(campgrounds))
	}
}

func TestRunReusesSeedUser(t *testing.T) {
	database := testDB(t)

	if err := Run(database, 1); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(database, 1); err != nil {
		t.Fatalf("second run: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'camper'").Scan(&count); err != nil {
		t.Fatalf("counting users: %v", err)
	}
	if count != 1 {
		t.Errorf("got %d seed users, want 1", count)
	}
}
