package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"example.com/dice-duel/internal/common/uuid"
	"example.com/dice-duel/internal/config"
	"example.com/dice-duel/internal/dice"
	"example.com/dice-duel/internal/game"
	"example.com/dice-duel/internal/transport"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	rdb   *redis.Client // nil unless BROADCAST_BACKEND=redis
	relay *transport.RedisRelay
	hub   *transport.Hub

	srv *http.Server
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	roller, err := dice.New(&dice.Config{Seed: cfg.Game.DiceSeed})
	if err != nil {
		return nil, fmt.Errorf("dice: %w", err)
	}

	hub := transport.NewHub(log)
	a := &App{cfg: cfg, log: log, hub: hub}

	// --- Broadcast backend ---
	var pub game.Publisher = hub
	if cfg.Broadcast.Backend == "redis" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, err)
		}

		a.rdb = rdb
		a.relay = transport.NewRedisRelay(rdb, cfg.Redis.Channel, uuid.New().NewUUID(), hub, log)
		pub = a.relay
	}

	// --- Game ---
	table := game.NewTable(roller, pub, log)
	wsSrv := transport.NewServer(transport.Config{
		SendBuffer:      cfg.WS.SendBuffer,
		PingInterval:    cfg.WS.PingInterval,
		WriteWait:       cfg.WS.WriteWait,
		MaxMessageBytes: cfg.WS.MaxMessageBytes,
		RateLimit:       cfg.WS.RateLimit,
		RateBurst:       cfg.WS.RateBurst,
	}, table, hub, uuid.New(), log)

	a.srv = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           a.routes(wsSrv),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	return a, nil
}

func (a *App) routes(wsSrv *transport.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", a.handleReady)

	wsSrv.RegisterRoutes(r)
	return r
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	if a.relay != nil && !a.relay.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("relay not subscribed"))
		return
	}
	if a.rdb != nil {
		if err := a.rdb.Ping(r.Context()).Err(); err != nil {
			a.log.Warn("readiness check failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("redis unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Run serves until ctx is done. With the Redis backend the listener only
// opens once the relay has subscribed.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.relay != nil {
		g.Go(func() error {
			return a.relay.Run(gctx)
		})

		select {
		case <-a.relay.Ready():
		case <-gctx.Done():
			err := g.Wait()
			_ = a.Close(context.Background())
			return err
		}
	}

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr, "broadcast", a.cfg.Broadcast.Backend)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		_ = a.srv.Shutdown(shutdownCtx)
		a.hub.CloseAll()
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return nil
}
