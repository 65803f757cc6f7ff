package server

import (
	"errors"
	"log/slog"

	"bloom/internal/models"
	"bloom/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// genericErrorMessage is what production clients see for internal failures.
const genericErrorMessage = "Something went wrong!"

// feedQuery holds parsed feed query parameters (1-based page).
type feedQuery struct {
	Page  int
	Limit int
	Tag   string
}

// parseFeedQuery extracts page, limit, and tag query parameters. Range
// clamping happens in the service.
func parseFeedQuery(c *fiber.Ctx) feedQuery {
	return feedQuery{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
		Tag:   c.Query("tag"),
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// respondError translates an error into the API error contract. Typed
// application errors map onto their statuses; anything else is an internal
// failure, logged, and reported with the real message only outside
// production.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	if appErr, ok := models.AsAppError(err); ok {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case models.CodeValidation, models.CodeConflict:
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case models.CodeUnauthorized:
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
	}

	observability.Logger().ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)

	if s.config.IsProduction() {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: genericErrorMessage,
		})
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
