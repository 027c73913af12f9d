package oembed

import (
	"context"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
)

// ErrNoMediaID is returned when the lookup succeeds but carries no media id.
var ErrNoMediaID = errors.New("oembed response has no media id")

//go:generate go run go.uber.org/mock/mockgen -source=oembed.go -destination=mocks/mock.go

// Resolver looks up public post URLs on the unauthenticated oEmbed endpoint.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (*domain.OembedResponse, error)
	MediaID(ctx context.Context, postURL string) (string, error)
}
