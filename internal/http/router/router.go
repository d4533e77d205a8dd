package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"delivery-routing/internal/http/handlers"
	"delivery-routing/internal/http/middleware"
	"delivery-routing/internal/logx"
)

// Deps lists the handlers wired into the router.
type Deps struct {
	Base     *handlers.Handlers
	Routing  *handlers.RoutingHandler
	Delivery *handlers.DeliveryHandler
	Logger   logx.Logger
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(5 * time.Second))
	r.Use(middleware.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/routes", func(r chi.Router) {
		r.Post("/regions", d.Routing.AssignRegions)
		r.Post("/optimize", d.Routing.Optimize)
		r.Post("/edit", d.Routing.Edit)
		r.Post("/price", d.Routing.Price)
	})

	r.Route("/deliveries", func(r chi.Router) {
		r.Post("/", d.Delivery.Create)
		r.Get("/{id}", d.Delivery.Get)
		r.Post("/{id}/transition", d.Delivery.Transition)
		r.Delete("/{id}/orders/{orderID}", d.Delivery.RemoveOrder)
		r.Delete("/{id}", d.Delivery.Delete)
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}
