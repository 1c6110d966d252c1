package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/query"
	"github.com/travigo/coruna-bus/pkg/resolver"
)

func LinesRouter(router fiber.Router, env *Environment) {
	router.Get("/", env.listLines)
	router.Get("/:identifier", env.getLine)
}

func (env *Environment) listLines(c *fiber.Ctx) error {
	lines, err := dataaggregator.Lookup[[]ctdf.Line](c.UserContext(), env.Aggregator, query.LineList{})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	linesReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, lines)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce lines")
	}

	return c.JSON(linesReduced)
}

func (env *Environment) getLine(c *fiber.Ctx) error {
	lineID, lineName := parseIdentifier(c.Params("identifier"))

	match, err := dataaggregator.Lookup[*resolver.LineMatch](c.UserContext(), env.Aggregator, query.Line{
		ID:   lineID,
		Name: lineName,
	})
	if err != nil {
		return sendError(c, resolutionStatus(err), err.Error())
	}

	catalog, err := dataaggregator.Lookup[*ctdf.Catalog](c.UserContext(), env.Aggregator, query.Catalog{})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	line, found := catalog.GetLine(match.LineID)
	if !found {
		return sendError(c, fiber.StatusNotFound, "Could not find Line matching Line Identifier")
	}

	lineReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, line)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce line")
	}

	return c.JSON(lineReduced)
}
