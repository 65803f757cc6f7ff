package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"bloom/internal/cache"
	"bloom/internal/config"
	"bloom/internal/database"
	"bloom/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a server over an in-memory SQLite database with no
// Redis, wired through the real route table.
func setupTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	cache.SetClient(nil)

	cfg := &config.Config{
		JWTSecret: "test-secret-key",
		Env:       "test",
	}
	srv := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	srv.SetupRoutes(app)
	return app, db
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp.StatusCode, decoded
}

// registerTestUser registers a user through the API and returns the token.
func registerTestUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	status, body := jsonRequest(t, app, "POST", "/api/auth/register", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, status)

	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createFeedPosts inserts posts directly, oldest first, so the feed order is
// deterministic.
func createFeedPosts(t *testing.T, db *gorm.DB, userID uint, count int) {
	t.Helper()

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < count; i++ {
		post := &models.Post{
			UserID:    userID,
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}
}

func firstUserID(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user).Error)
	return user.ID
}
