package routes

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/travigo/coruna-bus/pkg/ctdf"
	"github.com/travigo/coruna-bus/pkg/dataaggregator"
	"github.com/travigo/coruna-bus/pkg/dataaggregator/query"
	"github.com/travigo/coruna-bus/pkg/resolver"
	"github.com/travigo/coruna-bus/pkg/stopboard"
)

func StopsRouter(router fiber.Router, env *Environment) {
	router.Get("/", env.listStops)
	router.Get("/:identifier", env.getStop)
	router.Get("/:identifier/arrivals", env.getStopArrivals)
}

func (env *Environment) listStops(c *fiber.Ctx) error {
	name := c.Query("name")

	if name == "" {
		return sendError(c, fiber.StatusBadRequest, "A filter must be applied to the request")
	}

	stops, err := dataaggregator.Lookup[[]ctdf.Stop](c.UserContext(), env.Aggregator, query.StopSearch{
		Name: name,
	})
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, err.Error())
	}

	stopsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, stops)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce stops")
	}

	return c.JSON(stopsReduced)
}

func (env *Environment) getStop(c *fiber.Ctx) error {
	stopID, stopName := parseIdentifier(c.Params("identifier"))

	match, err := dataaggregator.Lookup[*resolver.StopMatch](c.UserContext(), env.Aggregator, query.Stop{
		ID:   stopID,
		Name: stopName,
	})
	if err != nil {
		return sendError(c, resolutionStatus(err), err.Error())
	}

	stopReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, match.Stop)
	if err != nil {
		return sendError(c, fiber.StatusInternalServerError, "Sherrif could not reduce stop")
	}

	return c.JSON(fiber.Map{
		"stop":       stopReduced,
		"matched_by": match.MatchedBy,
	})
}

func (env *Environment) getStopArrivals(c *fiber.Ctx) error {
	stopID, stopName := parseIdentifier(c.Params("identifier"))

	request := stopboard.Request{
		StopID:        stopID,
		StopName:      stopName,
		LineName:      c.Query("line"),
		CatalogSource: env.CatalogSource,
	}

	if busQuery := c.Query("bus"); busQuery != "" {
		busID, err := strconv.Atoi(busQuery)
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter bus should be an integer")
		}
		request.BusID = &busID
	}

	result := stopboard.Run(c.UserContext(), env.Aggregator, request)

	c.Status(resultStatus(result))
	return c.JSON(result)
}

func resultStatus(result *stopboard.Result) int {
	switch {
	case result.ErrorCode == stopboard.ErrorAPI:
		return fiber.StatusBadGateway
	case result.Failed():
		return fiber.StatusBadRequest
	case !result.OK:
		return fiber.StatusNotFound
	default:
		return fiber.StatusOK
	}
}
