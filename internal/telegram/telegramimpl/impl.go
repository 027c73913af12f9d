package telegramimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-media-telegram-bot/internal/telegram"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/retry"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config

	http  *resty.Client
	retry retry.Config
}

func New(opts Opts) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "error", err)
		return nil, err
	}

	log := opts.Logger.WithComponent("Telegram")
	log.Info("Authorized on Telegram", "bot", tgBot.Self.UserName)

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: log,
		Config: opts.Config,
		http:   resty.New().SetTimeout(opts.Config.Instagram.Timeout),
		retry:  retry.DefaultConfig(),
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)
