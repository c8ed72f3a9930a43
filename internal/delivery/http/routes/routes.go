package routes

import (
	"bid-match/internal/delivery/http/handler"
	"bid-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler and mounts them on the app. All API
// routes live under /api/v1; health and the review-queue websocket sit at
// the root.
type Registry struct {
	Health      *handler.HealthHandler
	JDSpecs     *handler.JDSpecHandler
	Bids        *handler.BidHandler
	Correlation *handler.CorrelationHandler
	Dictionary  *handler.DictionaryHandler
	Review      *handler.ReviewHandler
	Statistics  *handler.StatisticsHandler
	Resumes     *handler.ResumeHandler
	WS          *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/review-queue", r.WS.HandleQueueWS)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.JDSpecs != nil {
		r.JDSpecs.RegisterRoutes(v1)
	}
	if r.Bids != nil {
		r.Bids.RegisterRoutes(v1)
	}
	if r.Correlation != nil {
		r.Correlation.RegisterRoutes(v1)
	}
	if r.Dictionary != nil {
		r.Dictionary.RegisterRoutes(v1)
	}
	if r.Review != nil {
		r.Review.RegisterRoutes(v1)
	}
	if r.Statistics != nil {
		r.Statistics.RegisterRoutes(v1)
	}
	if r.Resumes != nil {
		r.Resumes.RegisterRoutes(v1)
	}
}
