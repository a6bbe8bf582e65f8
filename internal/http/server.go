package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"spesa/internal/cache"
	"spesa/internal/core"
	"spesa/internal/log"
	"spesa/internal/notify"
	"spesa/internal/storage"
	"spesa/internal/tracker"
)

// Options tunes the server beyond its listen address.
type Options struct {
	StatsCacheTTL  time.Duration
	StatsCacheSize int
}

func (o Options) withDefaults() Options {
	if o.StatsCacheTTL <= 0 {
		o.StatsCacheTTL = 30 * time.Second
	}
	if o.StatsCacheSize <= 0 {
		o.StatsCacheSize = 64
	}
	return o
}

// Server exposes the tracker over a JSON API. Statistics responses are
// cached per period/date and the cache is flushed whenever the expenses
// slot changes, locally or via a remote notification.
type Server struct {
	http.Server

	tracker *tracker.Tracker
	logger  *log.Logger

	statsCache   *cache.LRUCache[core.Stats]
	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, tr *tracker.Tracker, bus *notify.Bus, logger *log.Logger, opts Options) *Server {
	opts = opts.withDefaults()

	s := &Server{
		tracker:      tr,
		logger:       logger.WithComponent(log.ComponentHTTP),
		statsCache:   cache.NewLRUCache[core.Stats](opts.StatsCacheSize, opts.StatsCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.statsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Any change to the expenses slot invalidates every cached stats entry.
	bus.Subscribe(func(slot string) {
		if slot == storage.SlotExpenses {
			s.statsCache.Clear()
		}
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.withRequestLogging)

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", s.handleListExpenses)
			r.Post("/", s.handleCreateExpense)
			r.Delete("/", s.handleClearExpenses)
			r.Get("/{id}", s.handleGetExpense)
			r.Delete("/{id}", s.handleDeleteExpense)
			r.Put("/{id}/products", s.handleReplaceProducts)
		})

		r.Get("/stats", s.handleStats)

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", s.handleListStores)
			r.Post("/", s.handleAddStore)
			r.Put("/{name}", s.handleRenameStore)
			r.Delete("/{name}", s.handleRemoveStore)
		})

		r.Route("/reference", func(r chi.Router) {
			r.Get("/{name}", s.handleReferenceLookup)
			r.Get("/{name}/compare", s.handleReferenceCompare)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Delete("/", s.handleClearCart)
			r.Post("/items", s.handleCartAddItem)
			r.Put("/items/{id}", s.handleCartUpdateItem)
			r.Delete("/items/{id}", s.handleCartRemoveItem)
			r.Put("/pending", s.handleCartSetPending)
			r.Post("/checkout", s.handleCheckout)
		})
	})

	return r
}

// withRequestLogging records structured start/completion entries and feeds
// the request counters.
func (s *Server) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())

		s.logger.InfoContext(r.Context(), "Request completed",
			log.FieldRequestID, middleware.GetReqID(r.Context()),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, ww.Status(),
			log.FieldDuration, duration.Milliseconds())
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Shutdown stops the cache cleanup routine and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
