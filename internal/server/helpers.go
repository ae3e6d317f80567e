package server

import (
	"fmt"
	"strings"

	"happyhour/internal/middleware"
	"happyhour/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten signals that the handler already wrote an error response.
var errResponseWritten = fmt.Errorf("response already written")

// principalFromCtx pulls the authenticated principal set by AuthRequired.
func principalFromCtx(c *fiber.Ctx) models.Principal {
	principal, _ := c.Locals("principal").(models.Principal)
	return principal
}

// parseID extracts a positive integer path parameter, writing a 400 response
// and returning errResponseWritten on failure.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		humanized := humanizeParam(param)
		if writeErr := models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Invalid %s", humanized))); writeErr != nil {
			return 0, writeErr
		}
		return 0, errResponseWritten
	}
	return uint(id), nil
}

func humanizeParam(param string) string {
	humanized := strings.ReplaceAll(param, "_", " ")
	if strings.HasSuffix(humanized, " id") {
		humanized = strings.TrimSuffix(humanized, " id") + " ID"
	} else if humanized == "id" {
		humanized = "ID"
	}
	return humanized
}

// handleServiceError translates a service-layer error into the HTTP response.
// Untyped errors surface as 500s without leaking internals to the client,
// though guard errors keep their message so callers learn why (e.g. deleting
// a category that still has spaces).
func handleServiceError(c *fiber.Ctx, err error) error {
	status := models.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"path", c.Path(), "error", err)
	}
	return models.RespondWithError(c, status, err)
}
