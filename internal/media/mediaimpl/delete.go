package mediaimpl

import (
	"context"
	"net/url"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
)

func (m *MediaImpl) Delete(ctx context.Context, mediaID string) (*domain.DeleteResult, error) {
	if err := requireID(mediaID); err != nil {
		return nil, err
	}

	fields := m.session()
	fields["media_id"] = mediaID

	var out domain.DeleteResult
	err := m.call(ctx, transport.Request{
		Name:   "media_delete",
		Path:   "media/" + url.PathEscape(mediaID) + "/delete/",
		Query:  map[string]string{"media_type": "PHOTO"},
		Signed: true,
		Fields: fields,
	}, &out)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Media deleted", "media_id", mediaID, "did_delete", out.DidDelete, "status", out.Status)
	return &out, nil
}

func (m *MediaImpl) DeleteByURL(ctx context.Context, postURL string) (*domain.DeleteResult, error) {
	mediaID, err := m.oembed.MediaID(ctx, postURL)
	if err != nil {
		return nil, err
	}
	return m.Delete(ctx, mediaID)
}
