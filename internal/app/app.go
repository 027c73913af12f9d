package app

import (
	"context"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/internal/command"
	"github.com/orgball2608/insta-media-telegram-bot/internal/command/commandimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/housekeeping"
	"github.com/orgball2608/insta-media-telegram-bot/internal/housekeeping/housekeepingimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media/mediaimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/migrations"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed/oembedimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/ratelimit"
	repositories "github.com/orgball2608/insta-media-telegram-bot/internal/repositories/fx"
	"github.com/orgball2608/insta-media-telegram-bot/internal/session"
	"github.com/orgball2608/insta-media-telegram-bot/internal/session/sessionimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-media-telegram-bot/internal/telegram/telegramimpl"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport/transportimpl"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/pgx"
	"go.uber.org/fx"
)

const restartDelay = 5 * time.Second

// Core is the media client graph shared by the bot and the CLI.
var Core = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
	),
	fx.Provide(
		fx.Annotate(
			sessionimpl.New,
			fx.As(new(session.Manager)),
		),
		fx.Annotate(
			transportimpl.New,
			fx.As(new(transport.Transport)),
		),
		fx.Annotate(
			oembedimpl.New,
			fx.As(new(oembed.Resolver)),
		),
		fx.Annotate(
			mediaimpl.New,
			fx.As(new(media.Client)),
		),
	),
)

// Module is the Telegram bot service.
var Module = fx.Options(
	Core,
	fx.Provide(
		pgx.New,
		ratelimit.New,
	),
	repositories.Module,
	fx.Provide(
		fx.Annotate(
			telegramimpl.New,
			fx.As(new(telegram.Client)),
		),
		fx.Annotate(
			commandimpl.New,
			fx.As(new(command.Client)),
		),
		fx.Annotate(
			housekeepingimpl.New,
			fx.As(new(housekeeping.Client)),
		),
	),
	fx.Invoke(migrate),
	fx.Invoke(run),
)

func migrate(cfg *config.Config, log logger.Logger) error {
	db, err := migrations.Open(cfg.GetDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}
	log.Info("Database migrations applied")
	return nil
}

type runOpts struct {
	fx.In

	LC           fx.Lifecycle
	Logger       logger.Logger
	Config       *config.Config
	Session      session.Manager
	Telegram     telegram.Client
	Command      command.Client
	Housekeeping housekeeping.Client
}

func run(opts runOpts) {
	log := opts.Logger
	runCtx, cancel := context.WithCancel(context.Background())
	server := newOpsServer(opts.Config, log)

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go serve(server, log)

			if err := opts.Session.Login(ctx); err != nil {
				log.Error("Instagram login error", "error", err)
				if errors.IsUnauthorized(err) {
					opts.Telegram.SendMessageToUser("Instagram credentials are missing, set INSTAGRAM_USER and INSTAGRAM_PASS.")
				} else {
					opts.Telegram.SendMessageToUser("Instagram login error: " + err.Error())
				}
			}

			if err := opts.Housekeeping.ScheduleJournalCleanup(runCtx); err != nil {
				log.Error("Journal cleanup scheduling error", "error", err)
				opts.Telegram.SendMessageToUser("Journal cleanup scheduling error: " + err.Error())
			}

			go handleCommands(runCtx, opts.Command, log)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			opts.Command.Close()
			return server.Shutdown(ctx)
		},
	})
}

// handleCommands restarts the update loop until ctx is cancelled.
func handleCommands(ctx context.Context, cmd command.Client, log logger.Logger) {
	for {
		err := cmd.HandleCommand(ctx)
		if ctx.Err() != nil {
			return
		}

		log.Error("Command handler stopped, restarting", "error", err, "delay", restartDelay.String())
		select {
		case <-ctx.Done():
			return
		case <-time.After(restartDelay):
		}
	}
}
