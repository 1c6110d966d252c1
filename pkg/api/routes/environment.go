package routes

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/resolver"
)

// Environment is shared by every route handler
type Environment struct {
	Aggregator *dataaggregator.Aggregator

	// CatalogSource describes where the catalog was loaded from
	CatalogSource string
}

// parseIdentifier treats a numeric identifier as an ID and anything else as a name
func parseIdentifier(identifier string) (*int, string) {
	if id, err := strconv.Atoi(identifier); err == nil {
		return &id, ""
	}

	return nil, identifier
}

func sendError(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return c.JSON(fiber.Map{
		"error": message,
	})
}

func resolutionStatus(err error) int {
	switch {
	case errors.Is(err, resolver.ErrStopNotFound), errors.Is(err, resolver.ErrLineNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, resolver.ErrStopNameAmbiguous), errors.Is(err, resolver.ErrLineNameAmbiguous):
		return fiber.StatusConflict
	case errors.Is(err, resolver.ErrCatalogRequiredForStop), errors.Is(err, resolver.ErrCatalogRequiredForLine):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
