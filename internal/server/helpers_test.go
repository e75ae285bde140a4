package server

import (
	"errors"
	"testing"

	"waypost/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHumanizeParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"postId", "post ID"},
		{"commentId", "comment ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.param, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func TestStatusForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", models.NewValidationError("bad"), fiber.StatusBadRequest},
		{"not found", models.NewNotFoundError("Post", 1), fiber.StatusNotFound},
		{"unauthorized", models.NewUnauthorizedError("no"), fiber.StatusForbidden},
		{"geocode", models.NewGeocodeError("addr", errors.New("miss")), fiber.StatusUnprocessableEntity},
		{"store", models.NewStoreError(errors.New("db down")), fiber.StatusInternalServerError},
		{"internal", models.NewInternalError(errors.New("boom")), fiber.StatusInternalServerError},
		{"plain error", errors.New("anything"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}
