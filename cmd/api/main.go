// @title        Catalogo API
// @version      1.0.0
// @description  API de catálogo: categorías jerárquicas y productos.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/catalogo-api/docs"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/catalogo-api/internal/interfaces/http"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := log.WithContext(context.Background())
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al almacenamiento")
	}
	defer st.Close()

	categoryUC := usecase.NewCategoryUseCase(st.Categories, usecase.CategoryOptions{
		StrictCycleCheck: cfg.Catalog.StrictCycleCheck,
	})
	productUC := usecase.NewProductUseCase(st.Products, categoryUC)

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		Name:        cfg.App.Name,
		Version:     cfg.App.Version,
		SwaggerFile: cfg.HTTP.SwaggerFile,
		Logger:      log,
	}, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		Validator:  validation.New(validation.Options{StripUnknown: cfg.Validation.StripUnknown}),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
