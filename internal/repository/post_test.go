package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"bloom/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestPostCreateStoresOrderedTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	post := &models.Post{
		UserID:  user.ID,
		Content: "first post",
		Tags: []models.PostTag{
			{Position: 0, Name: "go"},
			{Position: 1, Name: ""},
			{Position: 2, Name: "go"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), post))
	require.NotZero(t, post.ID)

	loaded, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "", "go"}, loaded.TagList)
	assert.Equal(t, user.Username, loaded.Author.Username)
	require.NotNil(t, loaded.CommentList)
	assert.Empty(t, loaded.CommentList)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			UserID:    user.ID,
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.List(context.Background(), 10, 0, "")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 2", posts[0].Content)
	assert.Equal(t, "post 1", posts[1].Content)
	assert.Equal(t, "post 0", posts[2].Content)
}

func TestPostListEqualTimestampsOrderedByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	ts := time.Now().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		post := &models.Post{
			UserID:    user.ID,
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: ts,
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.List(context.Background(), 10, 0, "")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	// Ties on created_at fall back to descending ID, so the order is stable.
	assert.Equal(t, "post 2", posts[0].Content)
	assert.Equal(t, "post 0", posts[2].Content)
}

func TestPostListPagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 23; i++ {
		post := &models.Post{
			UserID:    user.ID,
			Content:   fmt.Sprintf("post %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	total, err := repo.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)

	// Third page of ten holds the three oldest posts.
	posts, err := repo.List(context.Background(), 10, 20, "")
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 2", posts[0].Content)
	assert.Equal(t, "post 0", posts[2].Content)

	// Past the end is empty, not an error.
	posts, err = repo.List(context.Background(), 10, 30, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostListTagFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	tagged := &models.Post{
		UserID:  user.ID,
		Content: "about go",
		Tags:    []models.PostTag{{Position: 0, Name: "go"}, {Position: 1, Name: "news"}},
	}
	require.NoError(t, db.Create(tagged).Error)

	other := &models.Post{
		UserID:  user.ID,
		Content: "about music",
		Tags:    []models.PostTag{{Position: 0, Name: "music"}},
	}
	require.NoError(t, db.Create(other).Error)

	posts, err := repo.List(context.Background(), 10, 0, "go")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "about go", posts[0].Content)

	total, err := repo.Count(context.Background(), "go")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Filter matches stored names exactly; no partials, no case folding.
	posts, err = repo.List(context.Background(), 10, 0, "GO")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestAddResonance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "resonate with me"}
	require.NoError(t, db.Create(post).Error)

	resonance, err := repo.AddResonance(context.Background(), bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resonance)

	// Second attempt by the same user is rejected and nothing changes.
	_, err = repo.AddResonance(context.Background(), bob.ID, post.ID)
	assert.ErrorIs(t, err, ErrAlreadyResonated)

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.Resonance)

	// A different user still can.
	resonance, err = repo.AddResonance(context.Background(), alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resonance)
}

func TestAddResonanceMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "alice")

	_, err := repo.AddResonance(context.Background(), user.ID, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestAddResonanceConcurrentSameUser(t *testing.T) {
	db := setupSharedTestDB(t, "resonance_race")
	repo := NewPostRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{UserID: alice.ID, Content: "race me"}
	require.NoError(t, db.Create(post).Error)

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.AddResonance(context.Background(), bob.ID, post.ID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyResonated)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one attempt may land")

	var stored models.Post
	require.NoError(t, db.First(&stored, post.ID).Error)
	assert.Equal(t, 1, stored.Resonance)

	var memberships int64
	require.NoError(t, db.Model(&models.Resonance{}).
		Where("post_id = ?", post.ID).Count(&memberships).Error)
	assert.Equal(t, int64(1), memberships)
}

func TestPostCreationDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user := createTestUser(t, db, "author")

	post := &models.Post{UserID: user.ID, Content: "fresh"}
	require.NoError(t, repo.Create(context.Background(), post))

	loaded, err := repo.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Resonance)
	assert.Equal(t, 0, loaded.Shares)
	require.NotNil(t, loaded.TagList)
	assert.Empty(t, loaded.TagList)
	assert.False(t, loaded.CreatedAt.IsZero())
}
