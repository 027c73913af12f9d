package sessionimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Davincible/goinsta/v3"
	"github.com/orgball2608/insta-media-telegram-bot/internal/session"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/retry"
	"go.uber.org/fx"
)

var ErrMissingCredentials = errors.Wrap(errors.ErrUnauthorized, "instagram credentials are not configured")

const validateTimeout = 5 * time.Second

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type SessionImpl struct {
	mu     sync.Mutex
	client *goinsta.Instagram
	jar    http.CookieJar
	config *config.Config
	logger logger.Logger
	retry  retry.Config
}

var _ session.Manager = (*SessionImpl)(nil)

func New(opts Opts) (*SessionImpl, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &SessionImpl{
		jar:    jar,
		config: opts.Config,
		logger: opts.Logger.WithComponent("Session"),
		retry:  retry.DefaultConfig(),
	}, nil
}

func (s *SessionImpl) Jar() http.CookieJar {
	return s.jar
}

func (s *SessionImpl) Username() string {
	return s.config.Instagram.User
}

// Login restores the saved session when it is still accepted, otherwise it
// logs in with the configured credentials and saves the new session.
// Either way the session cookies end up in Jar.
func (s *SessionImpl) Login(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(); err == nil {
		if s.validate(ctx) {
			s.logger.Info("Logged in using saved session", "user", s.Username())
			return nil
		}
		s.logger.Warn("Saved session is no longer valid, logging in again")
	} else {
		s.logger.Debug("No usable saved session", "error", err)
	}

	ig := s.config.Instagram
	if ig.User == "" || ig.Pass == "" {
		return ErrMissingCredentials
	}

	s.logger.Info("Logging in with credentials", "user", ig.User)
	client := goinsta.New(ig.User, ig.Pass)
	if err := client.SetCookieJar(s.jar); err != nil {
		return fmt.Errorf("failed to attach cookie jar: %w", err)
	}

	err := retry.Do(ctx, s.logger, "InstagramLogin", func() error {
		return client.Login()
	}, s.retry)
	if err != nil {
		return fmt.Errorf("failed to log in after multiple attempts: %w", err)
	}
	s.client = client

	if err := s.save(); err != nil {
		s.logger.Warn("Failed to save Instagram session", "error", err)
	}

	s.logger.Info("Logged in with credentials", "user", ig.User)
	return nil
}

func (s *SessionImpl) reload() error {
	path := s.config.Instagram.SessionPath
	if path == "" {
		return fmt.Errorf("session path is not configured")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("session file not found: %w", err)
	}

	client, err := goinsta.Import(path)
	if err != nil {
		return fmt.Errorf("failed to import session: %w", err)
	}
	if err := client.SetCookieJar(s.jar); err != nil {
		return fmt.Errorf("failed to attach cookie jar: %w", err)
	}

	s.client = client
	return nil
}

func (s *SessionImpl) validate(ctx context.Context) bool {
	if s.client == nil || s.client.Account == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	done := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Panic in Instagram session validation", "panic", r)
				done <- false
			}
		}()
		done <- s.client.Account.Sync() == nil
	}()

	select {
	case valid := <-done:
		return valid
	case <-ctx.Done():
		s.logger.Warn("Session validation timed out")
		return false
	}
}

func (s *SessionImpl) save() error {
	path := s.config.Instagram.SessionPath
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := s.client.Export(path); err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	s.logger.Info("Instagram session saved", "path", path)
	return nil
}
