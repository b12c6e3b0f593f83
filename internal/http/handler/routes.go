package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"companyreg/internal/service"
)

// Services groups the injected services for route registration.
type Services struct {
	Companies service.CompanyService
	Documents service.DocumentService
	Users     service.UserService
	Profiles  service.ProfileService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay free of business logic; everything interesting happens in the
// service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, reg *prometheus.Registry, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	app.Post("/companies", CreateCompany(svcs.Companies))
	app.Get("/companies", ListCompanies(svcs.Companies))
	app.Get("/companies/:id", GetCompany(svcs.Companies))
	app.Patch("/companies/:id", UpdateCompany(svcs.Companies))
	app.Post("/companies/:id/approve", ApproveCompany(svcs.Companies))
	app.Post("/companies/:id/reject", RejectCompany(svcs.Companies))
	app.Post("/companies/:id/responsibles", AssignResponsible(svcs.Companies))

	app.Get("/companies/:id/documents", ListCompanyDocuments(svcs.Documents))
	app.Post("/companies/:id/documents", UploadCompanyDocument(svcs.Documents))
	app.Get("/companies/:id/documents/:docId/download", DownloadCompanyDocument(svcs.Documents))
	app.Delete("/companies/:id/documents/:docId", RemoveCompanyDocument(svcs.Documents))

	app.Post("/users", CreateUser(svcs.Users))
	app.Get("/users", ListUsers(svcs.Users))
	app.Get("/users/:id", GetUser(svcs.Users))

	app.Get("/profiles", ListProfiles(svcs.Profiles))
}
