package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "mealorders/docs"
	"mealorders/pkg/config"
	"mealorders/pkg/logger"
	"mealorders/pkg/mealdb"
	"mealorders/pkg/otel"
	"mealorders/pkg/session/backend"
	"mealorders/pkg/web"
)

// @title Meal Orders API
// @version 1.0
// @description Search meals by ingredient and track them as orders for the current browser session.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	log := logger.New(os.Stdout, logger.ParseLevel(cfg.LogLevel), "mealorders", otel.GetTraceID)
	if err != nil {
		log.Error(context.Background(), "load config", "error", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, shutdown, err := otel.InitTracing(log, otel.Config{
		ServiceName: "mealorders",
		Host:        cfg.OTelHost,
		Probability: cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		os.Exit(1)
	}
	defer shutdown(context.Background())

	kv, closeKV, err := backend.Open(ctx, cfg)
	if err != nil {
		log.Error(ctx, "open session store", "backend", cfg.SessionBackend, "error", err)
		os.Exit(1)
	}
	defer closeKV()

	lookup := mealdb.New(cfg.MealDBBaseURL, cfg.MealDBTimeout, mealdb.WithLogger(log))
	srv := web.New(kv, lookup, log,
		web.WithTracer(tp.Tracer("mealorders")),
		web.WithSecureCookie(cfg.TLSCert != ""),
	)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Router()}
	log.Info(ctx, "listening", "addr", cfg.HTTPAddr, "backend", cfg.SessionBackend, "tls", cfg.TLSCert != "")
	if err := web.Run(ctx, httpSrv, cfg.TLSCert, cfg.TLSKey); err != nil {
		log.Error(ctx, "server closed", "error", err)
		os.Exit(1)
	}
	log.Info(context.Background(), "shutdown complete")
}
