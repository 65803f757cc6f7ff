package server

import (
	"bloom/internal/models"
	"bloom/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:  userID,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	q := parseFeedQuery(c)

	feed, err := s.postService.ListPosts(c.Context(), service.ListPostsInput{
		Page:  q.Page,
		Limit: q.Limit,
		Tag:   q.Tag,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(feed)
}

// GetPost handles GET /api/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(post)
}

// AddResonance handles POST /api/posts/:postId/resonance
func (s *Server) AddResonance(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	resonance, err := s.postService.AddResonance(c.Context(), userID, postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"resonance": resonance,
	})
}
