package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Routes builds the full handler chain: security headers, request logging,
// rate limiting and response compression around the router.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/prepared-data/:name", api.preparedDataHandler)
	router.HandlerFunc(http.MethodGet, "/health", api.healthHandler)
	router.Handler(http.MethodGet, "/metrics", api.metrics.Handler())

	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = NewRequestLoggingMiddleware(api.Logger)(handler)
	handler = securityHeaders(handler)
	return handler
}
