package publication

import (
	"context"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
)

var (
	ErrAlreadyExists = errors.New("publication already exists")
	ErrNotFound      = errors.Wrap(errors.ErrNotFound, "publication")
)

//go:generate go run go.uber.org/mock/mockgen -source=publication.go -destination=mocks/mock.go
type Repository interface {
	// Create records a successful publish.
	Create(ctx context.Context, p domain.Publication) error

	// MarkDeleted stamps deleted_at on the live row for mediaID.
	MarkDeleted(ctx context.Context, mediaID string) error

	// GetByChatID returns the newest publications for a chat, up to limit.
	GetByChatID(ctx context.Context, chatID int64, limit int) ([]*domain.Publication, error)

	// CleanupOldRecords deletes rows created before now minus olderThan.
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
