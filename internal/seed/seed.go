// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"bloom/internal/models"
	"bloom/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var tagPool = []string{
	"golang", "music", "travel", "food", "fitness", "gaming", "books",
	"movies", "art", "science", "photography", "coffee", "diy", "nature",
	"startups", "homelab", "linux", "cooking", "running", "history",
}

// Seed populates the database with sample users, posts, comments and
// resonances. Resonance counters on posts are kept consistent with the
// membership rows that back them.
func Seed(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	resonances, err := createResonances(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create resonances: %w", err)
	}
	log.Printf("✓ %d resonances created", resonances)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, resonances, post_tags, posts, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	// Always include a couple of well-known accounts for manual testing.
	if count >= 2 {
		for _, u := range []string{"bloom", "test"} {
			user := models.User{
				Username: u,
				Email:    fmt.Sprintf("%s@example.com", u),
				Password: string(hashedPassword),
				Bio:      "Early adopter.",
				Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", u),
			}
			if err := db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		// Suffix keeps generated usernames unique across the batch.
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))

		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashedPassword),
			Bio:      gofakeit.Sentence(8),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to assign posts to")
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := users[r.Intn(len(users))]

		// Between zero and three distinct tags per post.
		names := make([]string, 0, 3)
		for _, idx := range r.Perm(len(tagPool))[:r.Intn(4)] {
			names = append(names, tagPool[idx])
		}
		tags := make([]models.PostTag, 0, len(names))
		for pos, name := range service.NormalizeTags(names) {
			tags = append(tags, models.PostTag{Position: pos, Name: name})
		}

		// realistic created_at spread
		daysBack := r.Intn(90)
		hoursBack := r.Intn(24)
		minsBack := r.Intn(60)

		post := models.Post{
			UserID:    author.ID,
			Content:   gofakeit.Paragraph(1, 3, 8, " "),
			Tags:      tags,
			CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute),
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, post := range posts {
		for i := 0; i < r.Intn(4); i++ {
			comment := models.Comment{
				PostID:    post.ID,
				UserID:    users[r.Intn(len(users))].ID,
				Content:   gofakeit.Sentence(10),
				CreatedAt: post.CreatedAt.Add(time.Duration(r.Intn(72)) * time.Hour),
			}
			if err := db.Create(&comment).Error; err != nil {
				return created, err
			}
			created++
		}
	}

	return created, nil
}

// createResonances inserts resonance rows and bumps each post's counter by
// exactly the number of rows inserted, so counters stay consistent with the
// per-user uniqueness constraint.
func createResonances(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	created := 0

	for _, post := range posts {
		fans := r.Perm(len(users))[:r.Intn(len(users)/2+1)]
		for _, idx := range fans {
			res := models.Resonance{
				UserID: users[idx].ID,
				PostID: post.ID,
			}
			if err := db.Create(&res).Error; err != nil {
				return created, err
			}
			created++
		}
		if len(fans) > 0 {
			err := db.Model(&models.Post{}).
				Where("id = ?", post.ID).
				UpdateColumn("resonance", gorm.Expr("resonance + ?", len(fans))).Error
			if err != nil {
				return created, err
			}
		}
	}

	return created, nil
}
