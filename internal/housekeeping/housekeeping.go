package housekeeping

import "context"

type Client interface {
	// ScheduleJournalCleanup starts the daily cleanup job. The scheduler
	// stops when ctx is cancelled.
	ScheduleJournalCleanup(ctx context.Context) error

	// CleanupJournal removes journal rows past the retention window and
	// returns how many were deleted.
	CleanupJournal(ctx context.Context) (int64, error)
}
