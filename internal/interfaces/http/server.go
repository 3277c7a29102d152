package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/swaggo/swag"
)

// ServerConfig datos de la app que expone el servidor HTTP.
type ServerConfig struct {
	Name    string
	Version string
	// SwaggerFile archivo OpenAPI a servir en /docs. Vacío o inexistente: se usa la
	// documentación registrada en el paquete docs.
	SwaggerFile string
	Logger      *logger.Logger
}

// NewApp arma la aplicación Fiber: middlewares, /health, /docs y rutas de la API.
func NewApp(cfg ServerConfig, deps RouterDeps) *fiber.App {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	// recover dentro de RequestLogger: un panic se registra como 500 con su latencia.
	app.Use(recover.New())

	if spec := swaggerSpec(cfg.SwaggerFile); len(spec) > 0 {
		// Swagger UI en local: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: spec,
			Path:        "docs",
			Title:       cfg.Name,
		}))
	} else {
		log.Warn().Msg("sin documentación OpenAPI; /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: cfg.Name, Version: cfg.Version})
	})

	Router(app, deps)
	return app
}

func swaggerSpec(path string) []byte {
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			return b
		}
	}
	doc, err := swag.ReadDoc()
	if err != nil {
		return nil
	}
	return []byte(doc)
}
