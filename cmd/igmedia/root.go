package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/orgball2608/insta-media-telegram-bot/internal/app"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type clients struct {
	Media   media.Client
	Oembed  oembed.Resolver
	Session session.Manager
}

// newClients builds the media graph from the environment config.
var newClients = func() (*clients, error) {
	var c clients
	graph := fx.New(
		app.Core,
		fx.NopLogger,
		fx.Populate(&c.Media, &c.Oembed, &c.Session),
	)
	if err := graph.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "igmedia",
		Short:         "igmedia publishes, inspects and deletes Instagram photos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPublishCmd(),
		newGetCmd(),
		newDeleteCmd(),
		newOembedCmd(),
	)
	return root
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// loggedIn builds the clients and authenticates the session.
func loggedIn(cmd *cobra.Command) (*clients, error) {
	c, err := newClients()
	if err != nil {
		return nil, err
	}
	if err := c.Session.Login(cmd.Context()); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return c, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// failed annotates a media error with its kind.
func failed(op string, err error) error {
	return fmt.Errorf("%s failed (%s): %w", op, media.KindOf(err), err)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
