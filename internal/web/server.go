package web

import (
	"context"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vbonduro/pantraqa/internal/auth"
	"github.com/vbonduro/pantraqa/internal/domain"
	"github.com/vbonduro/pantraqa/internal/service"
)

// Deps are the collaborators a Server is built from.
type Deps struct {
	Sessions  *scs.SessionManager
	Auth      *auth.Holder
	Catalog   *service.CatalogService
	Stocks    *service.StockService
	Logs      *service.LogService
	Accounts  *service.AccountService
	Templates fs.FS
	Logger    *slog.Logger

	// TrustedOrigins are host:port pairs exempt from cross-origin request
	// rejection.
	TrustedOrigins []string

	// LoginRate is the sustained login attempts per second allowed per
	// client IP, with LoginBurst attempts allowed at once.
	LoginRate  float64
	LoginBurst int
}

type Server struct {
	sessions  *scs.SessionManager
	auth      *auth.Holder
	catalog   *service.CatalogService
	stocks    *service.StockService
	logs      *service.LogService
	accounts  *service.AccountService
	templates fs.FS
	tmplFuncs template.FuncMap
	submits   *submitGuard
	limiter   *loginLimiter
	router    chi.Router
	logger    *slog.Logger
	now       func() time.Time
}

func NewServer(d Deps) *Server {
	s := &Server{
		sessions:  d.Sessions,
		auth:      d.Auth,
		catalog:   d.Catalog,
		stocks:    d.Stocks,
		logs:      d.Logs,
		accounts:  d.Accounts,
		templates: d.Templates,
		tmplFuncs: templateFuncs(),
		submits:   newSubmitGuard(submitGuardSize, submitGuardTTL),
		limiter:   newLoginLimiter(d.LoginRate, d.LoginBurst),
		logger:    d.Logger,
		now:       time.Now,
	}
	s.router = s.routes(d)
	return s
}

func (s *Server) routes(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(securityHeaders)
	r.Use(csrfProtect(d.TrustedOrigins))
	r.Use(s.sessions.LoadAndSave)
	r.Use(s.loadAuth)

	r.Get("/healthz", handleHealth)
	r.Get("/static/*", s.handleStatic())

	r.Get("/", s.handleHome)
	r.Get("/learn-more", s.handleLearnMore)

	r.Group(func(r chi.Router) {
		r.Use(s.guard(auth.RequireGuest))
		r.Get("/login", s.handleLoginForm)
		r.With(s.limitLogins, s.singleSubmit).Post("/login", s.handleLogin)
		r.Get("/register", s.handleRegisterForm)
		r.With(s.singleSubmit).Post("/register", s.handleRegister)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.guard(auth.RequireAuth))

		r.Post("/logout", s.handleLogout)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/stocks", s.handleListStocks)
		r.Get("/drinks", s.handleListDrinks)

		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(domain.CapManageStock))
			r.Get("/stocks/{id}/threshold", s.handleThresholdForm)
			r.Patch("/stocks/{id}/threshold", s.handleUpdateThreshold)
			r.Get("/stocks-in", s.handleMovementForm(domain.ActionIn))
			r.With(s.singleSubmit).Post("/stocks-in", s.handleRecordMovement(domain.ActionIn))
			r.Get("/stocks-out", s.handleMovementForm(domain.ActionOut))
			r.With(s.singleSubmit).Post("/stocks-out", s.handleRecordMovement(domain.ActionOut))
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(domain.CapViewLogs))
			r.Get("/stocks-logs", s.handleStockLogs)
			r.Get("/stocks-logs/results", s.handleStockLogResults)
			r.Get("/stocks-logs/export/{format}", s.handleExportStockLogs)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(domain.CapManageCatalog))
			r.Delete("/drinks/{id}", s.handleDeleteDrink)
			r.Get("/add-drink", s.handleDrinkForm)
			r.With(s.singleSubmit).Post("/add-drink", s.handleCreateDrink)
			r.Get("/add-storage-location", s.handleLocationForm)
			r.With(s.singleSubmit).Post("/add-storage-location", s.handleCreateLocation)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.requireCapability(domain.CapManageUsers))
			r.Get("/all-users", s.handleListUsers)
			r.Put("/all-users/{id}/role", s.handleChangeRole)
			r.Delete("/all-users/{id}", s.handleDeleteUser)
		})
	})

	r.NotFound(s.handleNotFound)
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStatic() http.HandlerFunc {
	static, err := fs.Sub(s.templates, "static")
	if err != nil {
		s.logger.Error("static assets unavailable", "error", err)
		return http.NotFound
	}
	fileServer := http.StripPrefix("/static/", http.FileServerFS(static))
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	}
}
