package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/ascww/newsportal/cmd/newsportald/internal/config"
	"github.com/ascww/newsportal/cmd/newsportald/internal/http"
	"github.com/ascww/newsportal/cmd/newsportald/internal/upstream"
	"github.com/ascww/newsportal/cmd/newsportald/internal/views"
	"github.com/ascww/newsportal/feed"
)

func main() {
	if err := run(); err != nil {
		slog.Error("unhandled error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	conf, err := config.Get()
	if err != nil {
		return err
	}

	logger := conf.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := upstream.New(conf)
	registry := views.New(client, conf.ViewTTL, feed.WithLogger(logger))
	go registry.Run(ctx)

	return http.Listen(ctx, conf, client, registry)
}
