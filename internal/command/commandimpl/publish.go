package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
)

const publishTimeout = 5 * time.Minute

func (c *CommandImpl) handlePublish(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if !c.isOwner(msg) {
		_, err := c.Telegram.SendMessage(chatID, "Only the bot owner can publish photos.")
		return err
	}

	statusID, err := c.Telegram.SendMessage(chatID, "Publishing photo...")
	if err != nil {
		c.Logger.Warn("Failed to send status message", "chatID", chatID, "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	photo := largestPhoto(msg.Photo)
	data, err := c.Telegram.DownloadFile(ctx, photo.FileID)
	if err != nil {
		_ = c.reply(chatID, statusID, "Could not download the photo from Telegram.")
		return fmt.Errorf("failed to download photo: %w", err)
	}

	caption := captionText(msg.Caption)
	res, err := c.Media.Publish(ctx, domain.PublishCommand{Caption: caption, Photo: data})
	if err != nil {
		_ = c.reply(chatID, statusID, failureMessage(err))
		return fmt.Errorf("failed to publish photo: %w", err)
	}

	c.record(ctx, chatID, caption, res)

	text := "Published!"
	if link := res.Media.Permalink(); link != "" {
		text += "\n" + link
	}
	return c.reply(chatID, statusID, text)
}

func (c *CommandImpl) record(ctx context.Context, chatID int64, caption string, res *domain.PublishResult) {
	if res.Media == nil || res.Media.ID == "" {
		c.Logger.Warn("Publish result has no media id, skipping journal")
		return
	}

	err := c.PublicationRepo.Create(ctx, domain.Publication{
		ChatID:   chatID,
		UploadID: res.UploadID,
		MediaID:  res.Media.ID,
		Code:     res.Media.Code,
		Caption:  caption,
	})
	if err != nil && !errors.Is(err, publication.ErrAlreadyExists) {
		c.Logger.Error("Failed to record publication", "media_id", res.Media.ID, "error", err)
	}
}

func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, p := range sizes[1:] {
		if p.Width*p.Height > best.Width*best.Height {
			best = p
		}
	}
	return best
}

// captionText drops a leading /post (or /post@botname) from a caption.
func captionText(caption string) string {
	caption = strings.TrimSpace(caption)
	first, rest, _ := strings.Cut(caption, " ")
	if first == "/post" || strings.HasPrefix(first, "/post@") {
		return strings.TrimSpace(rest)
	}
	return caption
}
