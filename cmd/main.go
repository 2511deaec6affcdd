package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/notify"
)

const shutdownTimeout = 10 * time.Second

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// newRouter wires the HTTP surface around provider.
func newRouter(cfg *config.Config, provider *maintenance.Provider, tokens middleware.TokenValidator) http.Handler {
	authMiddleware := middleware.NewAuthMiddleware(tokens)
	limiter := middleware.NewRateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Window)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/auth/me", handlers.GetProfile)
	handlers.NewMaintenanceHandler(provider).Register(mux, authMiddleware)

	return middleware.RequestLogger(limiter.RateLimit(authMiddleware.Authenticate(mux)))
}

// newSource picks the backend named by cfg. The returned cleanup closes any
// connection it opened.
func newSource(ctx context.Context, cfg *config.Config) (maintenance.Source, func(), error) {
	if cfg.Source != config.SourceMongo {
		log.WithField("seed", cfg.Simulator.Seed).Info("Using simulated maintenance backend")
		return maintenance.NewMockSource(cfg.Simulator.Seed, cfg.Simulator.Counts, time.Now), func() {}, nil
	}

	client, err := db.ConnectMongo(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, nil, err
	}
	log.WithField("database", cfg.Mongo.Database).Info("Connected to MongoDB")
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.WithError(err).Warn("MongoDB disconnect failed")
		}
	}
	return db.NewMongoSource(client.Database(cfg.Mongo.Database)), cleanup, nil
}

// newNotifier always logs toasts and also publishes them when a broker is set.
func newNotifier(cfg *config.Config) (maintenance.Notifier, func()) {
	logNotifier := notify.NewLogNotifier()
	if cfg.MQTT.Broker == "" {
		return logNotifier, func() {}
	}
	mqttNotifier, err := notify.DialMQTT(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
	if err != nil {
		log.WithError(err).WithField("broker", cfg.MQTT.Broker).Warn("MQTT unavailable, toasts are only logged")
		return logNotifier, func() {}
	}
	return notify.Multi{logNotifier, mqttNotifier}, mqttNotifier.Close
}

func run(ctx context.Context, cfg *config.Config) error {
	source, closeSource, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	notifier, closeNotifier := newNotifier(cfg)
	defer closeNotifier()

	tokens, err := auth.NewService(cfg.Auth.Secret, cfg.Auth.Expiry)
	if err != nil {
		return err
	}

	provider := maintenance.NewProvider(source,
		maintenance.WithNotifier(notifier),
		maintenance.WithLatency(cfg.Simulator.MinLatency, cfg.Simulator.MaxLatency),
	)
	if err := provider.LoadAll(ctx); err != nil {
		log.WithError(err).Warn("Initial maintenance load failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, provider, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConfigureLogging(cfg.Log); err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
