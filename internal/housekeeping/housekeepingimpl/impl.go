package housekeepingimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-media-telegram-bot/internal/housekeeping"
	"github.com/orgball2608/insta-media-telegram-bot/internal/metrics"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"go.uber.org/fx"
)

const cleanupTimeout = 5 * time.Minute

type Opts struct {
	fx.In

	PublicationRepo publication.Repository
	Logger          logger.Logger
	Config          *config.Config
}

type HousekeepingImpl struct {
	publicationRepo publication.Repository
	logger          logger.Logger
	config          *config.Config
}

func New(opts Opts) *HousekeepingImpl {
	return &HousekeepingImpl{
		publicationRepo: opts.PublicationRepo,
		logger:          opts.Logger.WithComponent("Housekeeping"),
		config:          opts.Config,
	}
}

var _ housekeeping.Client = (*HousekeepingImpl)(nil)

func (h *HousekeepingImpl) ScheduleJournalCleanup(ctx context.Context) error {
	journal := h.config.Journal

	loc, err := time.LoadLocation(journal.Timezone)
	if err != nil {
		loc = time.Local
		h.logger.Warn("Failed to load journal timezone, using local timezone", "timezone", journal.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(journal.CleanupAt, 0, 0))),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				h.logger.Info("Context cancelled, skipping journal cleanup")
				return
			}

			cleanupCtx, cancel := context.WithTimeout(ctx, cleanupTimeout)
			defer cancel()

			if _, err := h.CleanupJournal(cleanupCtx); err != nil {
				h.logger.Error("Scheduled journal cleanup failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return fmt.Errorf("failed to schedule journal cleanup: %w", err)
	}

	scheduler.Start()
	h.logger.Info("Journal cleanup scheduled", "hour", journal.CleanupAt, "retention", journal.Retention.String())

	go func() {
		<-ctx.Done()
		h.logger.Info("Stopping journal cleanup scheduler")
		if err := scheduler.Shutdown(); err != nil {
			h.logger.Error("Failed to shut down cleanup scheduler", "error", err)
		}
	}()

	return nil
}

func (h *HousekeepingImpl) CleanupJournal(ctx context.Context) (int64, error) {
	retention := h.config.Journal.Retention
	if retention <= 0 {
		return 0, fmt.Errorf("journal retention must be positive, got %s", retention)
	}

	rows, err := h.publicationRepo.CleanupOldRecords(ctx, retention)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up journal: %w", err)
	}

	metrics.RecordCleanup(rows)
	h.logger.Info("Journal cleanup completed", "rows_deleted", rows)
	return rows, nil
}
