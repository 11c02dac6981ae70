package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"venturelink/chat"
	"venturelink/config"
	"venturelink/database"
	"venturelink/logger"
	"venturelink/match"
	"venturelink/messaging"
	"venturelink/metrics"
	"venturelink/notify"
	"venturelink/presence"
	"venturelink/recommend"
	"venturelink/repository"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	log.Info("starting venturelink matchmaking core")

	// ===== MONGODB (with retry) =====
	var dbErr error
	for i := 1; i <= 3; i++ {
		if err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB); err != nil {
			dbErr = err
			log.Warn("mongodb connection attempt failed",
				zap.Int("attempt", i), zap.Error(err))
			time.Sleep(2 * time.Second)
			continue
		}
		dbErr = nil
		break
	}
	if dbErr != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(dbErr))
	}
	defer database.DisconnectMongo()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatal("failed to create indexes", zap.Error(err))
	}
	cancel()

	repo := repository.New()

	// ===== NATS (optional: fan-out disabled when unavailable) =====
	var pub notify.Publisher
	nc, err := messaging.NewNATSClient(cfg.NATSURL, "venturelink-core")
	if err != nil {
		log.Warn("NATS unavailable, notification fan-out disabled", zap.Error(err))
	} else {
		pub = nc
		defer nc.Close()
	}

	// ===== REDIS (optional: presence disabled when unavailable) =====
	tracker, err := presence.NewTracker(cfg.RedisAddr)
	if err != nil {
		log.Warn("redis unavailable, presence tracking disabled", zap.Error(err))
	} else {
		defer tracker.Close()
	}

	// ===== SERVICES =====
	pusher := notify.NewPusher(repo, cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	if pusher == nil {
		log.Info("VAPID keys not configured, web push disabled")
	}
	notifier := notify.NewService(repo, pusher, pub, log.Named("notify"))

	recommender := recommend.NewService(repo, log.Named("recommend"))
	matcher := match.NewService(repo, notifier, log.Named("match"))
	chatter := chat.NewService(repo, notifier, log.Named("chat"))

	// The API layer (out of scope here) consumes these services.
	_ = recommender
	_ = matcher
	_ = chatter

	// ===== METRICS =====
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", metrics.Handler())
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: metricsMux}

	go func() {
		log.Info("metrics listener started", zap.String("addr", cfg.MetricsAddr))
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("metrics listener error", zap.Error(err))
		}
	}()

	log.Info("core ready")

	// ===== GRACEFUL SHUTDOWN =====
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("forced metrics listener shutdown", zap.Error(err))
	}

	log.Info("stopped")
}
