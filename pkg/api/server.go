package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/coruna-bus/pkg/api/routes"
)

// NewApp builds the web API with every route mounted under /core
func NewApp(env *routes.Environment) *fiber.App {
	webApp := fiber.New(fiber.Config{
		UnescapePath:          true,
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.StopsRouter(group.Group("/stops"), env)
	routes.LinesRouter(group.Group("/lines"), env)
	routes.ArrivalsRouter(group.Group("/arrivals"), env)

	return webApp
}

func SetupServer(listen string, env *routes.Environment) error {
	return NewApp(env).Listen(listen)
}
