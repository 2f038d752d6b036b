package http

import (
	"net/http"

	"mortgage-planner/logging"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Plan               *PlanHandler
	TermRecommendation *TermRecommendationHandler
	Household          *HouseholdHandler
}

// NewRouter mounts the handlers behind the rate limiter and the request
// logger.
func NewRouter(h Handlers, limiter *RateLimiter, logger *logging.Logger) http.Handler {
	limited := func(f http.HandlerFunc) http.Handler {
		return RateLimitMiddleware(limiter, f)
	}

	mux := http.NewServeMux()
	mux.Handle("/mortgage/plan", limited(h.Plan.CalculatePlan))
	mux.Handle("/mortgage/plans/{id}", limited(h.Plan.GetPlan))
	mux.Handle("/mortgage/compare", limited(h.Plan.ComparePlans))
	mux.Handle("/mortgage/recommend-period", limited(h.TermRecommendation.RecommendPeriod))
	mux.Handle("/household/sifo-fields", limited(h.Household.FormFields))

	return LoggingMiddleware(logger, mux)
}
