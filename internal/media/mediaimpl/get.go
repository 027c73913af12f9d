package mediaimpl

import (
	"context"
	"net/url"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
)

func (m *MediaImpl) Get(ctx context.Context, mediaID string) (*domain.MediaRecord, error) {
	if err := requireID(mediaID); err != nil {
		return nil, err
	}

	var out domain.MediaRecord
	err := m.call(ctx, transport.Request{
		Name: "media_info",
		Path: "media/" + url.PathEscape(mediaID) + "/info/",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByURL resolves postURL through oEmbed and then fetches the media.
// Resolution errors are returned unchanged.
func (m *MediaImpl) GetByURL(ctx context.Context, postURL string) (*domain.MediaRecord, error) {
	mediaID, err := m.oembed.MediaID(ctx, postURL)
	if err != nil {
		return nil, err
	}
	return m.Get(ctx, mediaID)
}
