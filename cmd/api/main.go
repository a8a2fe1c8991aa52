package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/automaton-ml/internal/application/analysis"
	"github.com/bryanwahyu/automaton-ml/internal/config"
	domain "github.com/bryanwahyu/automaton-ml/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-ml/internal/infra/accel"
	"github.com/bryanwahyu/automaton-ml/internal/infra/httpserver"
	"github.com/bryanwahyu/automaton-ml/internal/infra/monitoring"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.WithError(err).Fatal("config load error")
	}

	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	}

	// init error tracking + metrics
	if monitoring.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, cfg.Sentry.Release) {
		log.Info("sentry error tracking enabled")
	}
	monitoring.Register()

	// detect accelerator
	info := accel.Detect(context.Background())
	log.WithFields(log.Fields{
		"gpu_available": info.Available,
		"device_name":   info.DeviceName,
		"cuda_version":  info.CUDAVersion,
		"using_device":  accel.Device(),
	}).Info("accelerator detected")

	// init service
	svc := &appanalysis.Service{
		Engine: domain.NewAnalyzer(),
		Clock:  appanalysis.SystemClock{},
	}

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(svc, cfg))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Infof("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown error")
	}
	monitoring.Flush(2 * time.Second)
}
