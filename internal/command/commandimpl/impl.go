package commandimpl

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/internal/command"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/internal/ratelimit"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
	"github.com/orgball2608/insta-media-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/fx"
)

const closeTimeout = 30 * time.Second

type Opts struct {
	fx.In

	Media           media.Client
	Oembed          oembed.Resolver
	Telegram        telegram.Client
	PublicationRepo publication.Repository
	Limiter         ratelimit.Limiter
	Logger          logger.Logger
	Config          *config.Config
}

type CommandImpl struct {
	Media           media.Client
	Oembed          oembed.Resolver
	Telegram        telegram.Client
	PublicationRepo publication.Repository
	Limiter         ratelimit.Limiter
	Logger          logger.Logger
	Config          *config.Config

	pool *ants.Pool
}

func New(opts Opts) (*CommandImpl, error) {
	log := opts.Logger.WithComponent("Command")

	workers := opts.Config.Telegram.Workers
	if workers <= 0 {
		workers = 1
	}

	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(r any) {
		log.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create command pool: %w", err)
	}

	return &CommandImpl{
		Media:           opts.Media,
		Oembed:          opts.Oembed,
		Telegram:        opts.Telegram,
		PublicationRepo: opts.PublicationRepo,
		Limiter:         opts.Limiter,
		Logger:          log,
		Config:          opts.Config,
		pool:            pool,
	}, nil
}

var _ command.Client = (*CommandImpl)(nil)

func (c *CommandImpl) Close() {
	if err := c.pool.ReleaseTimeout(closeTimeout); err != nil {
		c.Logger.Warn("Command pool did not drain in time", "error", err)
	}
}
