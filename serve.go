package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var cmdServe = &cli.Command{
	Name:    "serve",
	Aliases: []string{"start"},
	Usage:   "Start the CDS service",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Value:   8000,
			Sources: cli.EnvVars("PORT"),
			Usage:   "the web server port",
		},
		&cli.StringFlag{
			Name:    "config",
			Value:   configFile,
			Sources: cli.EnvVars("CONFIG_FILE"),
			Usage:   "path to the JSON config file",
		},
		&cli.IntFlag{
			Name:    "timeout",
			Value:   30,
			Sources: cli.EnvVars("TIMEOUT"),
			Usage:   "timeout in seconds for outbound requests",
		},
	},
	Action: serve,
}

func serve(ctx context.Context, cmd *cli.Command) error {
	var err error

	// Read service configuration
	config, err = readConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	globalTimeout = int(cmd.Int("timeout"))

	// Size the session baseline store
	baselines, err = newBaselineStore(config.BaselineCapacity)
	if err != nil {
		return err
	}

	// Create new Echo object
	e := echo.New()
	e.HideBanner = true

	// Add basic middleware to log all requests
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Configure elastic apm logging
	if err := initAPM(e); err != nil {
		return err
	}

	// Sets CORS headers to allow all origins, but restrict HTTP method type
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	// Middleware to provide more control over response status for APM transactions
	// This must go after the Elastic APM middleware
	e.Use(filterError)

	registerRoutes(e)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cmd.Int("port")),
		Handler:      e,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Shut down when the process is interrupted
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("Starting server", zap.String("addr", server.Addr), zap.String("version", appVersion))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("Shutting down gracefully")

	// Give in-flight requests 5 seconds to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

func registerRoutes(e *echo.Echo) {
	// Adds a heartbeat handler
	e.GET("/heartbeat", heartbeat)
	e.GET("/version", version)

	// Creats API group to simplify middleware declaration
	cdsGroup := e.Group("/cds-services")

	// Add a GET handler for presenting the CDS Hooks services available
	cdsGroup.GET("", cdsServices)

	// Add a POST handler for CDS Hooks service
	cdsGroup.POST("/ogtt-risk", ogttRisk, openId)

	// Direct assessment API
	e.POST("/assessments", assess, openId)

	// Session baselines
	sessions := e.Group("/sessions/:session", openId)
	sessions.PUT("/baseline", putBaseline)
	sessions.GET("/baseline", getBaseline)
	sessions.DELETE("/baseline", deleteBaseline)
}
