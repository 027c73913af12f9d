package domain

import "time"

// Publication is a journal row for a post published through the bot or CLI.
type Publication struct {
	ID        int
	ChatID    int64
	UploadID  string
	MediaID   string
	Code      string
	Caption   string
	CreatedAt time.Time
	DeletedAt *time.Time
}
