package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"

	"github.com/ManiacAyu/RetainSure-urlShortner/internal/config"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/service"
	"github.com/ManiacAyu/RetainSure-urlShortner/internal/storage/memory"
	"github.com/go-chi/httplog/v2"
	"golang.org/x/sync/errgroup"

	api "github.com/ManiacAyu/RetainSure-urlShortner/internal/api/http"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}

	logger := httplog.NewLogger("url-shortener", httplog.Options{
		JSON:     cfg.Env == config.EnvProd,
		Concise:  cfg.Env != config.EnvProd,
		LogLevel: slog.LevelInfo,
	})

	store := memory.New()
	urlSvc := service.NewURLService(store, cfg.ShortCode.MaxAttempts)

	r := api.NewRouter(logger, urlSvc, cfg.BaseURL)

	server := &http.Server{
		Addr:           cfg.HTTPServer.Addr(),
		Handler:        r,
		ReadTimeout:    cfg.HTTPServer.ReadTimeout,
		WriteTimeout:   cfg.HTTPServer.WriteTimeout,
		IdleTimeout:    cfg.HTTPServer.IdleTimeout,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		switch cfg.Env {
		case config.EnvProd:
			err = server.ListenAndServeTLS(cfg.HTTPServer.CertFile, cfg.HTTPServer.KeyFile)
		default:
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return server.Shutdown(context.Background())
	})

	return g.Wait()
}
