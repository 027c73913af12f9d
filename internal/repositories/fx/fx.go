package fx

import (
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
	"go.uber.org/fx"
)

// Module provides every journal repository backed by the shared pool.
var Module = fx.Options(
	publication.Module,
)
