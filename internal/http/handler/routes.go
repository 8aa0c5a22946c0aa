package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"userapi/internal/service"
	"userapi/internal/store"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Export routes are only mounted when exportSvc is non-nil.
func RegisterRoutes(app *fiber.App, pinger store.Pinger, userSvc service.UserService, exportSvc service.ExportService) {
	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{})))

	users := app.Group(userBasePath)
	users.Get("/", ListUsers(userSvc))
	users.Post("/", CreateUser(userSvc))

	if exportSvc != nil {
		users.Post("/exports", ExportUsers(exportSvc))
		users.Get("/exports/:name", DownloadExport(exportSvc))
	}

	users.Get("/:id", GetUser(userSvc))
	users.Put("/:id", UpdateUser(userSvc))
	users.Delete("/:id", DeleteUser(userSvc))
}
