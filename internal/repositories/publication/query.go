package publication

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories"
)

const table = "publications"

var columns = []string{"id", "chat_id", "upload_id", "media_id", "code", "caption", "created_at", "deleted_at"}

func createQuery(p domain.Publication, now time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Insert(table).
		Columns("chat_id", "upload_id", "media_id", "code", "caption", "created_at").
		Values(p.ChatID, p.UploadID, p.MediaID, p.Code, p.Caption, now).
		ToSql()
}

func markDeletedQuery(mediaID string, now time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Update(table).
		Set("deleted_at", now).
		Where(sq.Eq{"media_id": mediaID}).
		Where(sq.Eq{"deleted_at": nil}).
		ToSql()
}

func byChatQuery(chatID int64, limit int) (string, []any, error) {
	return repositories.SqBuilder.
		Select(columns...).
		From(table).
		Where(sq.Eq{"chat_id": chatID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func cleanupQuery(cutoff time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"created_at": cutoff}).
		ToSql()
}
