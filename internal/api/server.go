// Package api exposes the task store over a JSON REST interface.
package api

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/manav03panchal/choreboard/internal/logging"
	"github.com/manav03panchal/choreboard/internal/storage"
)

// Options configures a Server.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	// DefaultTypes are listed first by the task-types endpoint.
	DefaultTypes []string
	// Driver names the storage backend in health responses.
	Driver string
	// Now is the clock for endpoints that default to today. Nil uses time.Now.
	Now func() time.Time
}

// Server serves the REST API.
type Server struct {
	opts    Options
	store   storage.Store
	handler http.Handler
}

// NewServer builds a server over store.
func NewServer(store storage.Store, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{opts: opts, store: store}
	s.handler = s.routes()
	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	h := &handler{
		store:    s.store,
		defaults: s.opts.DefaultTypes,
		driver:   s.opts.Driver,
		now:      s.opts.Now,
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(accessLog)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.createTask)
			r.Get("/", h.listTasks)
			r.Get("/{id}", h.getTask)
			r.Put("/{id}", h.updateTask)
			r.Delete("/{id}", h.deleteTask)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)
		})

		r.Get("/task-types", h.taskTypes)
		r.Get("/days/{date}", h.day)
		r.Get("/analysis", h.analysis)
		r.Get("/calendar", h.calendar)
	})

	return router
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled, then shuts down gracefully,
// giving in-flight requests up to ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("server listening", "addr", ln.Addr().String(), "store", s.opts.Driver)
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		logging.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
