package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/orgball2608/insta-media-telegram-bot/internal/app"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{})

	bot := fx.New(
		fx.Logger(log),
		app.Module,
	)

	if err := bot.Start(context.Background()); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), bot.StopTimeout())
	defer cancel()

	if err := bot.Stop(ctx); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
