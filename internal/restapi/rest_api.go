package restapi

import (
	"net/http"
	"time"

	"veloviz.transitdata.no/internal/app"
)

type RestAPI struct {
	*app.Application
	rateLimiter func(http.Handler) http.Handler
	metrics     *Metrics
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
// and metrics collectors.
func NewRestAPI(app *app.Application) *RestAPI {
	metrics, err := NewMetrics(nil)
	if err != nil {
		app.Logger.Error("failed to register metrics", "error", err)
	}
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		metrics:     metrics,
	}
}
