package ratelimit

import (
	"sync"
	"time"

	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"golang.org/x/time/rate"
)

// Limiter throttles bot commands per chat.
type Limiter interface {
	Allow(chatID int64) bool
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// PerChat keeps one token bucket per chat in memory. Buckets idle for longer
// than idleTTL are dropped on the next Allow.
type PerChat struct {
	mu      sync.Mutex
	chats   map[int64]*entry
	every   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewPerChat allows requests per period with the given burst.
// NewPerChat(1, 5*time.Second, 3) lets a chat run 3 commands back to back,
// then one every 5 seconds.
func NewPerChat(requests int, per time.Duration, burst int) *PerChat {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}

	every := rate.Every(per / time.Duration(requests))
	return &PerChat{
		chats:   make(map[int64]*entry),
		every:   every,
		burst:   burst,
		idleTTL: 10 * per * time.Duration(burst),
		now:     time.Now,
	}
}

// New builds the limiter from the Telegram config section.
func New(cfg *config.Config) Limiter {
	tg := cfg.Telegram
	return NewPerChat(tg.RateLimit, tg.RatePer, tg.RateBurst)
}

func (l *PerChat) Allow(chatID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	e, ok := l.chats[chatID]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.every, l.burst)}
		l.chats[chatID] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1)
}

func (l *PerChat) prune(now time.Time) {
	if l.idleTTL <= 0 {
		return
	}
	for id, e := range l.chats {
		if now.Sub(e.lastSeen) > l.idleTTL {
			delete(l.chats, id)
		}
	}
}
