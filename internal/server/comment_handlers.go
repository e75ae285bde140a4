package server

import (
	"waypost/internal/models"
	"waypost/internal/notifications"
	"waypost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment creates a comment on a post (protected)
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	created, err := s.commentService.CreateComment(ctx, service.CreateCommentInput{
		CreatorID: userID,
		PostID:    postID,
		Body:      req.Body,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(c, notifications.EventCommentCreated, fiber.Map{
		"post_id":    postID,
		"comment_id": created.ID,
		"creator_id": created.CreatorID,
	})

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetComments returns all comments for a post, oldest first (public).
// A post with no comments yields an empty list, not an error.
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetComments(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comments)
}
