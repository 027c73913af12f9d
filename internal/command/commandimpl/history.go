package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/formatter"
)

const historyCaption = 40

func (c *CommandImpl) handleHistory(ctx context.Context, chatID int64) error {
	pubs, err := c.PublicationRepo.GetByChatID(ctx, chatID, c.Config.Telegram.HistorySize)
	if err != nil {
		c.send(chatID, "Could not load the publication history.")
		return fmt.Errorf("failed to load history for chat %d: %w", chatID, err)
	}

	if len(pubs) == 0 {
		_, err := c.Telegram.SendMessage(chatID, "Nothing has been published from this chat yet.")
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, formatHistory(pubs))
	return err
}

func formatHistory(pubs []*domain.Publication) string {
	var sb strings.Builder
	sb.WriteString("Recent publications:\n")
	for i, p := range pubs {
		fmt.Fprintf(&sb, "\n%d. %s  %s", i+1, p.CreatedAt.Format("2006-01-02 15:04"), p.MediaID)
		if link := domain.Permalink(p.Code); link != "" {
			sb.WriteString("  " + link)
		}
		if p.DeletedAt != nil {
			sb.WriteString("  (deleted)")
		}
		if p.Caption != "" {
			fmt.Fprintf(&sb, "\n   %s", formatter.Truncate(p.Caption, historyCaption))
		}
	}
	return sb.String()
}
