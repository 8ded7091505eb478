// Package seed fills the database with sample campgrounds for local
// development.
package seed

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/jharden/campgrounds/internal/auth"
	"github.com/jharden/campgrounds/internal/campground"
)

//go:embed seeddata.yaml
var seedYAML []byte

type city struct {
	City      string  `yaml:"city"`
	State     string  `yaml:"state"`
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
}

type dataset struct {
	Cities      []city   `yaml:"cities"`
	Descriptors []string `yaml:"descriptors"`
	Places      []string `yaml:"places"`
}

const (
	seedUsername = "camper"
	seedEmail    = "camper@example.com"
	seedPassword = "campground"
)

var stockImages = []campground.Image{
	{PublicID: "campgrounds/sample-woods", URL: "https://images.unsplash.com/photo-1508873696983-2dfd5898f08b"},
	{PublicID: "campgrounds/sample-lake", URL: "https://images.unsplash.com/photo-1571863533956-01c88e79957e"},
}

const sampleDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
	"Quo laboriosam quasi saepe magni odio ullam, amet blanditiis tempora."

// Run replaces all campgrounds with n randomly generated ones owned by
// the seed user. The seed user is created on first run.
func Run(db *sql.DB, n int) error {
	var data dataset
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("parsing seed data: %w", err)
	}
	if len(data.Cities) == 0 || len(data.Descriptors) == 0 || len(data.Places) == 0 {
		return fmt.Errorf("seed data is incomplete")
	}

	userID, err := ensureSeedUser(db)
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM reviews"); err != nil {
		return fmt.Errorf("clearing reviews: %w", err)
	}
	if _, err := db.Exec("DELETE FROM campground_images"); err != nil {
		return fmt.Errorf("clearing images: %w", err)
	}
	if _, err := db.Exec("DELETE FROM campgrounds"); err != nil {
		return fmt.Errorf("clearing campgrounds: %w", err)
	}

	repo := campground.NewRepository(db)
	for i := 0; i < n; i++ {
		loc := data.Cities[rand.Intn(len(data.Cities))]
		c := &campground.Campground{
			Title:       data.Descriptors[rand.Intn(len(data.Descriptors))] + " " + data.Places[rand.Intn(len(data.Places))],
			Description: sampleDescription,
			Location:    fmt.Sprintf("%s, %s", loc.City, loc.State),
			Price:       float64(10 + rand.Intn(20)),
			Longitude:   loc.Longitude,
			Latitude:    loc.Latitude,
			AuthorID:    userID,
		}

		created, err := repo.Insert(c)
		if err != nil {
			return fmt.Errorf("seeding campground %d: %w", i+1, err)
		}
		if err := repo.AddImages(created.ID, stockImages); err != nil {
			return fmt.Errorf("seeding images for campground %d: %w", created.ID, err)
		}
	}

	slog.Info("seeded database", "campgrounds", n, "user", seedUsername)
	return nil
}

func ensureSeedUser(db *sql.DB) (int64, error) {
	var id int64
	err := db.QueryRow("SELECT id FROM users WHERE username = ?", seedUsername).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("querying seed user: %w", err)
	}

	users := auth.NewUserStore(db)
	u, err := users.Register(seedUsername, seedEmail, seedPassword)
	if err != nil {
		return 0, fmt.Errorf("creating seed user: %w", err)
	}
	return u.ID, nil
}
