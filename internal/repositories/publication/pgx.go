package publication

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
)

const uniqueViolation = "23505"

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
	now    func() time.Time
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PublicationRepo"),
		now:    time.Now,
	}
}

var _ Repository = (*Pgx)(nil)

func (p *Pgx) Create(ctx context.Context, pub domain.Publication) error {
	query, args, err := createQuery(pub, p.now())
	if err != nil {
		return repositories.ErrBadQuery
	}

	_, err = p.pg.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}

	p.logger.Debug("Publication recorded", "media_id", pub.MediaID, "chat_id", pub.ChatID)
	return nil
}

func (p *Pgx) MarkDeleted(ctx context.Context, mediaID string) error {
	query, args, err := markDeletedQuery(mediaID, p.now())
	if err != nil {
		return repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Pgx) GetByChatID(ctx context.Context, chatID int64, limit int) ([]*domain.Publication, error) {
	if limit <= 0 {
		return nil, nil
	}

	query, args, err := byChatQuery(chatID, limit)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pubs []*domain.Publication
	for rows.Next() {
		var pub domain.Publication
		if err := rows.Scan(
			&pub.ID,
			&pub.ChatID,
			&pub.UploadID,
			&pub.MediaID,
			&pub.Code,
			&pub.Caption,
			&pub.CreatedAt,
			&pub.DeletedAt,
		); err != nil {
			return nil, err
		}
		pubs = append(pubs, &pub)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return pubs, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	query, args, err := cleanupQuery(p.now().Add(-olderThan))
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
