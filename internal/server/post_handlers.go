package server

import (
	"waypost/internal/middleware"
	"waypost/internal/models"
	"waypost/internal/notifications"
	"waypost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost creates a location-tagged post (protected)
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Address     string `json:"address"`
		ImageRef    string `json:"image_ref"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		CreatorID:   userID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		ImageRef:    req.ImageRef,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c, notifications.EventPostCreated, fiber.Map{
		"post_id":    post.ID,
		"creator_id": post.CreatorID,
	})

	return c.Status(fiber.StatusCreated).JSON(post)
}

// EditPost updates title, description and address of an owned post (protected)
func (s *Server) EditPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Address     string `json:"address"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.EditPost(ctx, service.EditPostInput{
		PostID:      postID,
		RequesterID: userID,
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(post)
}

// DeletePost removes an owned post (protected)
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(ctx, service.DeletePostInput{
		PostID:      postID,
		RequesterID: userID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c, notifications.EventPostDeleted, fiber.Map{
		"post_id": postID,
	})

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// GetPost returns a single post (public)
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// GetFeed returns the most recent posts, newest first (public)
func (s *Server) GetFeed(c *fiber.Ctx) error {
	posts, err := s.postService.GetFeed(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// GetUserPosts returns the posts created by a user (public)
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	posts, err := s.postService.GetPostsByUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// publishEvent publishes a broadcast event, logging instead of failing the
// request when the publish does not go through.
func (s *Server) publishEvent(c *fiber.Ctx, eventType string, payload interface{}) {
	if err := s.notifier.PublishBroadcast(c.UserContext(), eventType, payload); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "event publish failed",
			"event", eventType, "error", err.Error())
	}
}
