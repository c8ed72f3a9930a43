package app

import (
	"fmt"
	"strings"

	"bid-match/internal/config"
	"bid-match/internal/delivery/http/handler"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/delivery/http/routes"
	"bid-match/internal/logger"
	"bid-match/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	errMw := middleware.NewErrorMiddleware(c.Logger)
	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(c.DB),
		JDSpecs:     handler.NewJDSpecHandler(c.JDSpecs),
		Bids:        handler.NewBidHandler(c.Bids),
		Correlation: handler.NewCorrelationHandler(c.Correlation),
		Dictionary:  handler.NewDictionaryHandler(c.Dictionary),
		Review:      handler.NewReviewHandler(c.Review),
		Statistics:  handler.NewStatisticsHandler(c.Statistics),
		Resumes:     handler.NewResumeHandler(c.Resumes),
		WS:          ws.NewHandler(c.Hub, c.Logger),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app, starts the websocket hub
// loop, and returns a cleanup closing everything the container opened.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}

	go container.Hub.Run()

	app := New(container)
	cleanup := func() error {
		err := container.Close()
		_ = logger.Sync()
		return err
	}
	return app, cleanup, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	json := cfg.App.LogJSON || cfg.App.IsProduction()
	return logger.New(json, cfg.App.LogDebug)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
