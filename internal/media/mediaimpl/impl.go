package mediaimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config    *config.Config
	Logger    logger.Logger
	Transport transport.Transport
	Oembed    oembed.Resolver
}

type MediaImpl struct {
	transport transport.Transport
	oembed    oembed.Resolver
	device    domain.DeviceProfile
	validate  *validator.Validate
	logger    logger.Logger

	now      func() time.Time
	newToken func() string
}

var _ media.Client = (*MediaImpl)(nil)

func New(opts Opts) *MediaImpl {
	return &MediaImpl{
		transport: opts.Transport,
		oembed:    opts.Oembed,
		device:    deviceProfile(opts.Config),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    opts.Logger.WithComponent("Media"),
		now:       time.Now,
		newToken:  uuid.NewString,
	}
}

func deviceProfile(cfg *config.Config) domain.DeviceProfile {
	return domain.DeviceProfile{
		DeviceID:         cfg.Instagram.DeviceID,
		Manufacturer:     cfg.Device.Manufacturer,
		Model:            cfg.Device.Model,
		AndroidVersion:   cfg.Device.AndroidVersion,
		AndroidRelease:   cfg.Device.AndroidRelease,
		CropOriginalSize: cfg.Edits.CropOriginalSize,
		CropCenter:       cfg.Edits.CropCenter,
		CropZoom:         cfg.Edits.CropZoom,
		SourceWidth:      cfg.Extra.SourceWidth,
		SourceHeight:     cfg.Extra.SourceHeight,
	}
}

// session returns the fields every authenticated mutation carries.
func (m *MediaImpl) session() map[string]any {
	return map[string]any{
		"_uuid":      m.newToken(),
		"device_id":  m.device.DeviceID,
		"_csrftoken": m.transport.CookieValue("csrftoken"),
	}
}

func (m *MediaImpl) call(ctx context.Context, req transport.Request, out any) error {
	resp, err := m.transport.Execute(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: %w", req.Name, err)
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("%s: %w", req.Name, err)
	}
	return nil
}

func requireID(mediaID string) error {
	if mediaID == "" {
		return errors.NewWithCode(errors.CodeInvalid, "media id is empty")
	}
	return nil
}
