package media

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
)

var (
	ErrUploadFailed        = errors.New("upload failed")
	ErrConfigurationFailed = errors.New("configuration failed")
	ErrInvalidCommand      = errors.WrapWithCode(errors.ErrInvalidInput, errors.CodeInvalid, "invalid publish command")
)

// UploadFailedError reports a non-ok status from the upload step.
type UploadFailedError struct {
	Status string
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload failed with status %q", e.Status)
}

func (e *UploadFailedError) Is(target error) bool {
	return target == ErrUploadFailed
}

// ConfigurationFailedError reports a non-ok status from the configure step.
// The uploaded content is left orphaned on the platform.
type ConfigurationFailedError struct {
	Status   string
	UploadID string
}

func (e *ConfigurationFailedError) Error() string {
	return fmt.Sprintf("configuration of upload %s failed with status %q", e.UploadID, e.Status)
}

func (e *ConfigurationFailedError) Is(target error) bool {
	return target == ErrConfigurationFailed
}

type Kind int

const (
	KindNone Kind = iota
	KindUploadFailed
	KindConfigurationFailed
	KindTransport
	KindDecode
	KindInvalid
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUploadFailed:
		return "upload_failed"
	case KindConfigurationFailed:
		return "configuration_failed"
	case KindTransport:
		return "transport"
	case KindDecode:
		return "decode"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// KindOf classifies an error returned by Client.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrUploadFailed):
		return KindUploadFailed
	case errors.Is(err, ErrConfigurationFailed):
		return KindConfigurationFailed
	}

	switch errors.GetCode(err) {
	case errors.CodeTransport:
		return KindTransport
	case errors.CodeDecode:
		return KindDecode
	case errors.CodeInvalid:
		return KindInvalid
	default:
		return KindUnknown
	}
}

//go:generate go run go.uber.org/mock/mockgen -source=media.go -destination=mocks/mock.go

// Client is the media workflow over the private API.
type Client interface {
	// Publish uploads the photo and then configures it as a post. Configure
	// is only attempted after a successful upload.
	Publish(ctx context.Context, cmd domain.PublishCommand) (*domain.PublishResult, error)
	Upload(ctx context.Context, photo domain.Photo) (*domain.UploadResult, error)
	Configure(ctx context.Context, uploadID, caption string) (*domain.PublishResult, error)

	Get(ctx context.Context, mediaID string) (*domain.MediaRecord, error)
	GetByURL(ctx context.Context, postURL string) (*domain.MediaRecord, error)

	Delete(ctx context.Context, mediaID string) (*domain.DeleteResult, error)
	DeleteByURL(ctx context.Context, postURL string) (*domain.DeleteResult, error)
}
