package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/json-properties/internal/application"
	"github.com/eugenenazirov/json-properties/internal/config"
	"github.com/eugenenazirov/json-properties/internal/logging"
)

var signalNotify = signal.Notify

type cliOptions struct {
	overrides *config.CLIOverrides
	list      bool
}

func parseFlags(args []string) (cliOptions, error) {
	kingpinApp := kingpin.New("json-properties", "Loads hierarchical JSON and YAML configuration files into flat dotted properties")
	configFile := kingpinApp.Flag("config", "Path to YAML settings file").String()
	configName := kingpinApp.Flag("config-name", "Base name of the configuration files to discover").String()
	searchLocations := kingpinApp.Flag("search-location", "Directory or file searched for configuration (repeatable, later wins)").Strings()
	additionalLocation := kingpinApp.Flag("additional-location", "Comma-separated locations that take precedence over search locations").String()
	classpathRoot := kingpinApp.Flag("classpath-root", "Directory that classpath: locations resolve against").String()
	maxDepth := kingpinApp.Flag("max-depth", "Maximum nesting depth accepted in a document").Int()
	propertyKey := kingpinApp.Flag("property", "Property reported by the runner").String()
	schemaFile := kingpinApp.Flag("schema", "JSON Schema location applied to JSON configuration files").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	serve := kingpinApp.Flag("serve", "Expose the loaded properties over HTTP").Bool()
	list := kingpinApp.Flag("list", "Print every resolved property with its origin").Bool()
	port := kingpinApp.Flag("port", "HTTP port exposed by the inspection API").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	if _, err := kingpinApp.Parse(args); err != nil {
		return cliOptions{}, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile:      *configFile,
		SearchLocations: *searchLocations,
		Serve:           *serve,
	}

	if *configName != "" {
		overrides.ConfigName = configName
	}
	if *additionalLocation != "" {
		overrides.AdditionalLocation = additionalLocation
	}
	if *classpathRoot != "" {
		overrides.ClasspathRoot = classpathRoot
	}
	if *maxDepth != 0 {
		overrides.MaxDepth = maxDepth
	}
	if *propertyKey != "" {
		overrides.PropertyKey = propertyKey
	}
	if *schemaFile != "" {
		overrides.SchemaFile = schemaFile
	}
	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}
	if *port != "" {
		overrides.Port = port
	}
	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}
	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	return cliOptions{overrides: overrides, list: *list}, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "json-properties: %v\n", err)
		os.Exit(1)
	}
}

// run loads the configuration environment, prints the injected property and,
// with --serve, exposes the inspection API until the process is signalled.
func run(args []string, stdout io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	cfg, err := config.Load(opts.overrides)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Runner().Run(stdout); err != nil {
		return fmt.Errorf("failed to resolve %s: %w", cfg.PropertyKey, err)
	}
	if opts.list {
		if err := app.Runner().List(stdout); err != nil {
			return fmt.Errorf("failed to list properties: %w", err)
		}
	}

	if !cfg.Serve {
		return nil
	}

	if err := app.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	return nil
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	logger.Info("shutting down inspection API", zap.Stringer("signal", sig), zap.String("addr", server.Addr))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
