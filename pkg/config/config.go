package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST" env-default:"localhost"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		// User is the only Telegram account allowed to publish or delete.
		User        int64         `env:"TELEGRAM_USER"`
		Token       string        `env:"TELEGRAM_TOKEN"`
		Workers     int           `env:"TELEGRAM_WORKERS" env-default:"5"`
		RateLimit   int           `env:"TELEGRAM_RATE_LIMIT" env-default:"1"`
		RatePer     time.Duration `env:"TELEGRAM_RATE_PER" env-default:"5s"`
		RateBurst   int           `env:"TELEGRAM_RATE_BURST" env-default:"3"`
		HistorySize int           `env:"TELEGRAM_HISTORY_SIZE" env-default:"10"`
	}
	Instagram struct {
		User          string        `env:"INSTAGRAM_USER"`
		Pass          string        `env:"INSTAGRAM_PASS"`
		SessionPath   string        `env:"INSTAGRAM_SESSION_PATH" env-default:"./goinsta-session"`
		DeviceID      string        `env:"INSTAGRAM_DEVICE_ID" env-default:"android-4f3b2c1d0e9a8b7c"`
		APIBaseURL    string        `env:"INSTAGRAM_API_URL" env-default:"https://i.instagram.com/api/v1/"`
		OembedURL     string        `env:"INSTAGRAM_OEMBED_URL" env-default:"https://api.instagram.com/oembed"`
		UserAgent     string        `env:"INSTAGRAM_USER_AGENT" env-default:"Instagram 10.26.0 Android (20/4.4.4; 480dpi; 1080x1920; HUAWEI; HUAWEI SCL - L03; hwSCL-Q; qcom; en_US)"`
		SigKey        string        `env:"INSTAGRAM_SIG_KEY"`
		SigKeyVersion string        `env:"INSTAGRAM_SIG_KEY_VERSION" env-default:"4"`
		Timeout       time.Duration `env:"INSTAGRAM_TIMEOUT" env-default:"60s"`
	}
	Device struct {
		Manufacturer   string `env:"DEVICE_MANUFACTURER" env-default:"Huawei"`
		Model          string `env:"DEVICE_MODEL" env-default:"HUAWEI SCL - L03"`
		AndroidVersion string `env:"DEVICE_ANDROID_VERSION" env-default:"20"`
		AndroidRelease string `env:"DEVICE_ANDROID_RELEASE" env-default:"4.4.4"`
	}
	Edits struct {
		CropOriginalSize string `env:"EDITS_CROP_ORIGINAL_SIZE" env-default:"[800.0,800.0]"`
		CropCenter       string `env:"EDITS_CROP_CENTER" env-default:"[0.0,-0.0]"`
		CropZoom         string `env:"EDITS_CROP_ZOOM" env-default:"1.0"`
	}
	Extra struct {
		SourceWidth  string `env:"EXTRA_SOURCE_WIDTH" env-default:"800"`
		SourceHeight string `env:"EXTRA_SOURCE_HEIGHT" env-default:"800"`
	}
	Journal struct {
		Retention time.Duration `env:"JOURNAL_RETENTION" env-default:"720h"`
		CleanupAt uint          `env:"JOURNAL_CLEANUP_HOUR" env-default:"3"`
		Timezone  string        `env:"JOURNAL_TIMEZONE" env-default:"Asia/Ho_Chi_Minh"`
	}
}

var (
	once    sync.Once
	cfg     *Config
	loadErr error
)

func New() (*Config, error) {
	once.Do(func() {
		c := &Config{}
		if err := cleanenv.ReadEnv(c); err != nil {
			help, _ := cleanenv.GetDescription(c, nil)
			loadErr = fmt.Errorf("failed to read configuration: %w\n%s", err, help)
			return
		}
		cfg = c
	})
	return cfg, loadErr
}

// GetDSN returns the postgres connection URL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
