// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"
	"strings"

	"bloom/internal/cache"
	"bloom/internal/models"
	"bloom/internal/observability"
	"bloom/internal/repository"
)

const (
	// DefaultPageSize is the feed page size when the caller does not pass one.
	DefaultPageSize = 10
	// MaxPageSize caps the feed page size. Requests above it are clamped,
	// not rejected.
	MaxPageSize = 100
)

// PostService implements post creation, the global feed, and resonance.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Tags    []string
}

type ListPostsInput struct {
	Page  int
	Limit int
	Tag   string
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// NormalizeTags lowercases and trims each tag, preserving order. Tags that
// trim to the empty string are kept; storage mirrors the input shape.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, len(tags))
	for i, tag := range tags {
		normalized[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	return normalized
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > models.MaxContentLength {
		return nil, models.NewValidationError("Content too long (max 2000 characters)")
	}

	tags := NormalizeTags(in.Tags)
	tagRows := make([]models.PostTag, len(tags))
	for i, name := range tags {
		tagRows[i] = models.PostTag{Position: i, Name: name}
	}

	post := &models.Post{
		UserID:  in.UserID,
		Content: in.Content,
		Tags:    tagRows,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with the author resolved for the response.
	return s.GetPost(ctx, post.ID)
}

// GetPost loads a single post with its author, tags, and comments resolved.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPostNotFound) {
		return nil, models.NewNotFoundError("Post not found")
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

// ListPosts returns one page of the global feed, newest first, optionally
// filtered by tag. Page and limit are clamped rather than rejected; a page
// past the end yields an empty list with the correct total.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) (*models.FeedPage, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	key := cache.FeedKey(ctx, page, limit, in.Tag)
	var cached models.FeedPage
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		observability.FeedCacheResults.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	observability.FeedCacheResults.WithLabelValues("miss").Inc()

	total, err := s.postRepo.Count(ctx, in.Tag)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.List(ctx, limit, (page-1)*limit, in.Tag)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	feed := &models.FeedPage{
		Posts:       posts,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		CurrentPage: page,
	}

	_ = cache.SetJSON(ctx, key, feed, cache.FeedTTL)

	return feed, nil
}

// AddResonance applies a user's one-time reaction to a post and returns the
// post's updated resonance count.
func (s *PostService) AddResonance(ctx context.Context, userID, postID uint) (int, error) {
	resonance, err := s.postRepo.AddResonance(ctx, userID, postID)
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		return 0, models.NewNotFoundError("Post not found")
	case errors.Is(err, repository.ErrAlreadyResonated):
		observability.ResonanceConflicts.Inc()
		return 0, models.NewConflictError("Already resonated with this post")
	case err != nil:
		return 0, err
	}
	return resonance, nil
}
