package routes

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/coruna-bus/pkg/stopboard"
	"github.com/travigo/coruna-bus/pkg/util"
)

// MaxBoardStops caps how many stops one board request may ask for
const MaxBoardStops = 20

type boardEntry struct {
	StopID int               `json:"stop_id"`
	Result *stopboard.Result `json:"result"`
}

func ArrivalsRouter(router fiber.Router, env *Environment) {
	router.Get("/", env.getBoard)
}

// getBoard runs the stop board for several stops at once
func (env *Environment) getBoard(c *fiber.Ctx) error {
	stopsQuery := c.Query("stops")

	if stopsQuery == "" {
		return sendError(c, fiber.StatusBadRequest, "A filter must be applied to the request")
	}

	var stopIDs []int
	for _, part := range strings.Split(stopsQuery, ",") {
		stopID, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return sendError(c, fiber.StatusBadRequest, "Parameter stops should be a comma separated list of stop IDs")
		}
		stopIDs = append(stopIDs, stopID)
	}

	stopIDs = util.SortedUniqueInts(stopIDs)
	if len(stopIDs) > MaxBoardStops {
		return sendError(c, fiber.StatusBadRequest, "Too many stops requested")
	}

	ctx := c.UserContext()
	board := make([]boardEntry, len(stopIDs))

	p := pool.New().WithMaxGoroutines(8)
	for i, stopID := range stopIDs {
		p.Go(func() {
			board[i] = boardEntry{
				StopID: stopID,
				Result: stopboard.Run(ctx, env.Aggregator, stopboard.Request{
					StopID:        &stopID,
					CatalogSource: env.CatalogSource,
				}),
			}
		})
	}
	p.Wait()

	return c.JSON(board)
}
