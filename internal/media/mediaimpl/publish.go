package mediaimpl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/metrics"
	"github.com/orgball2608/insta-media-telegram-bot/internal/transport"
)

const imageCompression = `{"lib_name":"jt","lib_version":"1.3.0","quality":"92"}`

func (m *MediaImpl) Publish(ctx context.Context, cmd domain.PublishCommand) (*domain.PublishResult, error) {
	if err := m.validate.Struct(cmd); err != nil {
		metrics.RecordPublish("invalid")
		return nil, fmt.Errorf("%w: %v", media.ErrInvalidCommand, err)
	}

	uploaded, err := m.Upload(ctx, cmd.Photo)
	if err != nil {
		metrics.RecordPublish("upload_error")
		return nil, err
	}
	if !uploaded.OK() {
		metrics.RecordPublish("upload_failed")
		m.logger.Warn("Upload rejected", "status", uploaded.Status)
		return nil, &media.UploadFailedError{Status: uploaded.Status}
	}

	configured, err := m.Configure(ctx, uploaded.UploadID, cmd.Caption)
	if err != nil {
		metrics.RecordPublish("configure_error")
		return nil, err
	}
	if !configured.OK() {
		metrics.RecordPublish("configure_failed")
		m.logger.Warn("Configuration rejected", "upload_id", uploaded.UploadID, "status", configured.Status)
		return nil, &media.ConfigurationFailedError{Status: configured.Status, UploadID: uploaded.UploadID}
	}

	metrics.RecordPublish("ok")
	m.logger.Info("Photo published", "upload_id", uploaded.UploadID, "permalink", configured.Media.Permalink())
	return configured, nil
}

// Upload sends the photo bytes. The status is returned as-is; Publish is
// the one that treats a non-ok status as a failure.
func (m *MediaImpl) Upload(ctx context.Context, photo domain.Photo) (*domain.UploadResult, error) {
	predicted := strconv.FormatInt(m.now().UnixMilli(), 10)

	fields := m.session()
	fields["type"] = "media"
	fields["image_compression"] = imageCompression
	fields["upload_id"] = predicted

	var out domain.UploadResult
	err := m.call(ctx, transport.Request{
		Name:   "upload_photo",
		Path:   "upload/photo/",
		Fields: fields,
		File: &transport.File{
			Field:   "photo",
			Name:    fmt.Sprintf("pending_media_%s.jpg", predicted),
			Content: photo,
		},
	}, &out)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Photo uploaded", "upload_id", out.UploadID, "status", out.Status)
	return &out, nil
}

// Configure publishes a previously uploaded photo with caption.
func (m *MediaImpl) Configure(ctx context.Context, uploadID, caption string) (*domain.PublishResult, error) {
	d := m.device

	var out domain.PublishResult
	err := m.call(ctx, transport.Request{
		Name:   "configure_media",
		Path:   "media/configure/",
		Signed: true,
		Fields: map[string]any{
			"source_type": "4",
			"caption":     caption,
			"upload_id":   uploadID,
			"device": map[string]string{
				"manufacturer":    d.Manufacturer,
				"model":           d.Model,
				"android_version": d.AndroidVersion,
				"android_release": d.AndroidRelease,
			},
			"edits": map[string]string{
				"crop_original_size": d.CropOriginalSize,
				"crop_center":        d.CropCenter,
				"crop_zoom":          d.CropZoom,
			},
			"extra": map[string]string{
				"source_width":  d.SourceWidth,
				"source_height": d.SourceHeight,
			},
		},
	}, &out)
	if err != nil {
		return nil, err
	}

	return &out, nil
}
