// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"happyhour/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestUserPassword is the plaintext password shared by all seeded users.
const TestUserPassword = "Password123$xyz"

// Seeder populates the database with demo data.
type Seeder struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data, children before parents so foreign keys
// never dangle mid-cleanup.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Rating{},
		&models.Comment{},
		&models.Like{},
		&models.Visit{},
		&models.Space{},
		&models.Location{},
		&models.Category{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("clear %T: %w", table, err)
		}
	}
	log.Println("✓ Existing data cleared")
	return nil
}

// SeedUsers creates n users with faked identities. The first user is an admin.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		firstName := gofakeit.FirstName()
		lastName := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s%s%d", firstName, lastName, s.rand.Intn(1000)))

		user := models.User{
			Username:  username,
			Password:  string(hash),
			FirstName: firstName,
			LastName:  lastName,
			Email:     fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			IsAdmin:   i == 0,
		}
		if err := s.db.Create(&user).Error; err != nil {
			// Faked usernames can collide on unlucky draws; skip and move on.
			continue
		}
		users = append(users, user)
	}

	if len(users) == 0 {
		return nil, fmt.Errorf("no users could be created")
	}
	log.Printf("✓ %d users created", len(users))
	return users, nil
}

// SeedEngagement spreads ratings, comments, likes and visits across the given
// users and spaces. Each user engages with a random subset of spaces, at most
// once per space per activity.
func (s *Seeder) SeedEngagement(users []models.User, spaces []models.Space) error {
	var ratings, comments, likes, visits int

	for _, user := range users {
		for _, space := range spaces {
			if s.rand.Float64() < 0.6 {
				rating := models.Rating{
					Rating:  1 + s.rand.Intn(5),
					UserID:  user.ID,
					SpaceID: space.ID,
				}
				if err := s.db.Create(&rating).Error; err == nil {
					ratings++
				}
			}

			if s.rand.Float64() < 0.4 {
				comment := models.Comment{
					Content:     gofakeit.Sentence(8 + s.rand.Intn(10)),
					CommentDate: randomPastTime(s.rand, 90),
					UserID:      user.ID,
					SpaceID:     space.ID,
				}
				if err := s.db.Create(&comment).Error; err == nil {
					comments++
				}
			}

			if s.rand.Float64() < 0.3 {
				if err := s.db.Create(&models.Like{UserID: user.ID, SpaceID: space.ID}).Error; err == nil {
					likes++
				}
			}

			if s.rand.Float64() < 0.25 {
				visit := models.Visit{
					UserID:    user.ID,
					SpaceID:   space.ID,
					VisitDate: randomPastTime(s.rand, 365),
				}
				if err := s.db.Create(&visit).Error; err == nil {
					visits++
				}
			}
		}
	}

	log.Printf("✓ Engagement created: %d ratings, %d comments, %d likes, %d visits",
		ratings, comments, likes, visits)
	return nil
}

// Seed runs the full pipeline: reference data, users, engagement.
func (s *Seeder) Seed(numUsers int, reference ReferenceData) error {
	if err := Reference(s.db, reference); err != nil {
		return fmt.Errorf("seed reference data: %w", err)
	}

	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	var spaces []models.Space
	if err := s.db.Find(&spaces).Error; err != nil {
		return fmt.Errorf("load spaces: %w", err)
	}

	return s.SeedEngagement(users, spaces)
}

func randomPastTime(r *rand.Rand, maxDays int) time.Time {
	daysBack := r.Intn(maxDays)
	hoursBack := r.Intn(24)
	minsBack := r.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
