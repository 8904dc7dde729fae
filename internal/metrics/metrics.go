// Package metrics exposes Prometheus instrumentation for the HTTP surface
// and the persistence gateway.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sggmico/skitchen/internal/gateway"
	"github.com/sggmico/skitchen/internal/models"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skitchen_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skitchen_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	gatewayCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skitchen_gateway_calls_total",
		Help: "Persistence gateway calls by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// InstrumentGateway wraps a gateway so every call is counted by operation and
// outcome (ok, not_found, conflict, error).
func InstrumentGateway(gw gateway.Gateway) gateway.Gateway {
	return &instrumentedGateway{gw: gw}
}

type instrumentedGateway struct {
	gw gateway.Gateway
}

func record(operation string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrNotFound):
		outcome = "not_found"
	case errors.Is(err, gateway.ErrConflict):
		outcome = "conflict"
	default:
		outcome = "error"
	}
	gatewayCalls.WithLabelValues(operation, outcome).Inc()
}

func (g *instrumentedGateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	cats, err := g.gw.ListCategories(ctx)
	record("list_categories", err)
	return cats, err
}

func (g *instrumentedGateway) CreateCategory(ctx context.Context, name string, isFront bool) (*models.Category, error) {
	cat, err := g.gw.CreateCategory(ctx, name, isFront)
	record("create_category", err)
	return cat, err
}

func (g *instrumentedGateway) UpdateCategory(ctx context.Context, id string, upd models.CategoryUpdate) error {
	err := g.gw.UpdateCategory(ctx, id, upd)
	record("update_category", err)
	return err
}

func (g *instrumentedGateway) DeleteCategory(ctx context.Context, id string) error {
	err := g.gw.DeleteCategory(ctx, id)
	record("delete_category", err)
	return err
}

func (g *instrumentedGateway) ReorderCategories(ctx context.Context, ordered []models.Category) error {
	err := g.gw.ReorderCategories(ctx, ordered)
	record("reorder_categories", err)
	return err
}

func (g *instrumentedGateway) ListDishes(ctx context.Context) ([]models.Dish, error) {
	dishes, err := g.gw.ListDishes(ctx)
	record("list_dishes", err)
	return dishes, err
}

func (g *instrumentedGateway) CreateDish(ctx context.Context, d models.Dish) (*models.Dish, error) {
	dish, err := g.gw.CreateDish(ctx, d)
	record("create_dish", err)
	return dish, err
}

func (g *instrumentedGateway) UpdateDish(ctx context.Context, id string, upd models.DishUpdate) error {
	err := g.gw.UpdateDish(ctx, id, upd)
	record("update_dish", err)
	return err
}

func (g *instrumentedGateway) DeleteDish(ctx context.Context, id string) error {
	err := g.gw.DeleteDish(ctx, id)
	record("delete_dish", err)
	return err
}
