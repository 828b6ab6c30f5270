package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/json-properties/internal/api"
	"github.com/eugenenazirov/json-properties/internal/bootstrap"
	"github.com/eugenenazirov/json-properties/internal/config"
	"github.com/eugenenazirov/json-properties/internal/environment"
	"github.com/eugenenazirov/json-properties/internal/propsource"
	"github.com/eugenenazirov/json-properties/internal/resource"
	"github.com/eugenenazirov/json-properties/internal/runner"
	"github.com/eugenenazirov/json-properties/internal/schema"
)

// App encapsulates the loaded environment, the runner and the HTTP server.
type App struct {
	env    *environment.Environment
	runner *runner.Runner
	router http.Handler
	logger *zap.Logger
	server *http.Server
}

// New discovers and loads the configuration files described by cfg and wires
// the components that consume the resulting environment.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	resolver := resource.NewResolver(os.DirFS(cfg.ClasspathRoot))

	loaderOpts := []propsource.LoaderOption{
		propsource.WithMaxDepth(cfg.MaxDepth),
		propsource.WithLogger(logger),
	}
	if cfg.SchemaFile != "" {
		validator, err := schema.Load(resolver.Resolve(cfg.SchemaFile))
		if err != nil {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		logger.Info("validating JSON configuration", zap.String("schema", validator.Location()))
		loaderOpts = append(loaderOpts, propsource.WithSchema(validator))
	}

	files, err := bootstrap.New(resolver, logger, bootstrap.Options{
		ConfigName:          cfg.ConfigName,
		SearchLocations:     cfg.SearchLocations,
		AdditionalLocations: cfg.AdditionalLocations(),
	},
		propsource.NewJSONLoader(loaderOpts...),
		propsource.NewYAMLLoader(loaderOpts...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create config file loader: %w", err)
	}

	env := environment.New()
	if err := files.Load(env); err != nil {
		return nil, fmt.Errorf("failed to load configuration files: %w", err)
	}

	handler := api.NewHandler(env)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		env:    env,
		runner: runner.New(env, cfg.PropertyKey, logger),
		router: apiRouter,
		logger: logger,
		server: NewServer(cfg, apiRouter),
	}, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Environment returns the loaded property environment.
func (a *App) Environment() *environment.Environment {
	return a.env
}

// Runner returns the runner that reports the configured property.
func (a *App) Runner() *runner.Runner {
	return a.runner
}

// Handler returns the API router.
func (a *App) Handler() http.Handler {
	return a.router
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
