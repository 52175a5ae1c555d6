package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"cultureland/docs"
	"cultureland/internal/auth"
	"cultureland/internal/domain/reactions"
	"cultureland/internal/domain/reviews"
	"cultureland/internal/metrics"
	"cultureland/internal/ratelimiter"
)

// reviewService is what the handlers need from reviews.Service.
type reviewService interface {
	CreateReview(ctx context.Context, userID int64, in reviews.CreateInput) (*reviews.Review, error)
	ListByEvent(ctx context.Context, eventID int64, order reviews.SortOrder) ([]reviews.View, error)
	Famous(ctx context.Context) ([]reviews.View, error)
	CreateReaction(ctx context.Context, userID, reviewID int64, value reactions.Value) (*reactions.Reaction, error)
	DeleteReaction(ctx context.Context, userID, reviewID int64) (int64, error)
	ReactionTally(ctx context.Context, reviewID int64) (reactions.Tally, error)
}

type application struct {
	config        config
	logger        *zap.SugaredLogger
	reviews       reviewService
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	healthChecks  []healthCheck
}

type config struct {
	addr          string
	apiURL        string
	env           string
	db            dbConfig
	cloudinaryURL string
	auth          authConfig
	rateLimiter   ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	aud    string
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type dbConfig struct {
	addr        string
	maxConns    int32
	maxIdleTime string
	autoMigrate bool
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	// ctx.Done() fires once the request has run this long
	r.Use(middleware.Timeout(60 * time.Second))

	r.With(app.BasicAuthMiddleware()).Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := fmt.Sprintf("%s/swagger/doc.json", docs.SwaggerInfo.BasePath)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", app.listReviewsHandler)
			r.Get("/famous", app.famousReviewsHandler)
			r.With(app.AuthTokenMiddleware).Post("/", app.createReviewHandler)

			r.Route("/{reviewID}/reactions", func(r chi.Router) {
				r.Get("/", app.getReactionTallyHandler)

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)
					r.Post("/", app.createReactionHandler)
					r.Delete("/", app.deleteReactionHandler)
				})
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
