package commandimpl

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
)

func (c *CommandImpl) handleDelete(ctx context.Context, msg *tgbotapi.Message, args string) error {
	chatID := msg.Chat.ID

	if !c.isOwner(msg) {
		_, err := c.Telegram.SendMessage(chatID, "Only the bot owner can delete posts.")
		return err
	}
	if args == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a media id or post URL: /delete <id|url>")
		return err
	}

	// URLs are resolved here rather than through DeleteByURL so the journal
	// row can be matched by media id.
	mediaID := args
	if isURL(args) {
		id, err := c.Oembed.MediaID(ctx, args)
		if err != nil {
			c.send(chatID, failureMessage(err))
			return fmt.Errorf("failed to resolve %s: %w", args, err)
		}
		mediaID = id
	}

	res, err := c.Media.Delete(ctx, mediaID)
	if err != nil {
		c.send(chatID, failureMessage(err))
		return fmt.Errorf("failed to delete media %s: %w", mediaID, err)
	}

	if !res.DidDelete {
		_, err := c.Telegram.SendMessage(chatID, fmt.Sprintf("Instagram did not delete %s (status %q).", mediaID, res.Status))
		return err
	}

	if err := c.PublicationRepo.MarkDeleted(ctx, mediaID); err != nil && !errors.Is(err, publication.ErrNotFound) {
		c.Logger.Error("Failed to mark publication deleted", "media_id", mediaID, "error", err)
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf("Deleted %s.", mediaID))
	return err
}
