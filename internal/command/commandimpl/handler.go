package commandimpl

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-media-telegram-bot/internal/metrics"
)

const helpMessage = `👋 Welcome to the Instagram media bot!

PUBLISHING (owner only):
Send a photo, optionally with a caption, to publish it.
A leading /post in the caption is ignored.

LOOKUPS:
/media <id|url> - Show a post with its likes and comments.
/oembed <url> - Resolve a post URL to its media id.
/history - Recent posts published from this chat.

MANAGEMENT (owner only):
/delete <id|url> - Delete a post.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly")
				return errors.New("telegram updates channel closed")
			}

			if err := c.pool.Submit(func() { c.handleUpdate(ctx, update) }); err != nil {
				c.Logger.Error("Failed to submit update to pool", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	isPhoto := len(msg.Photo) > 0
	if !isPhoto && !msg.IsCommand() {
		return
	}

	chatID := msg.Chat.ID
	if !c.Limiter.Allow(chatID) {
		metrics.RecordCommand(commandName(msg), "rate_limited")
		c.send(chatID, "Too many requests, please slow down.")
		return
	}

	var err error
	if isPhoto {
		err = c.handlePublish(ctx, msg)
	} else {
		err = c.processCommand(ctx, msg)
	}

	result := "ok"
	if err != nil {
		result = "error"
		c.Logger.Error("Error processing update", "command", commandName(msg), "chatID", chatID, "error", err)
	}
	metrics.RecordCommand(commandName(msg), result)
}

func (c *CommandImpl) processCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "post":
		_, err := c.Telegram.SendMessage(chatID, "Attach a photo and put /post <caption> in its caption.")
		return err
	case "media":
		return c.handleMedia(ctx, chatID, args)
	case "oembed":
		return c.handleOembed(ctx, chatID, args)
	case "delete":
		return c.handleDelete(ctx, msg, args)
	case "history":
		return c.handleHistory(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see the list of available commands.")
		return err
	}
}

func (c *CommandImpl) isOwner(msg *tgbotapi.Message) bool {
	owner := c.Config.Telegram.User
	return owner != 0 && msg.From != nil && msg.From.ID == owner
}

// send replies without surfacing failures; the client already logs them.
func (c *CommandImpl) send(chatID int64, text string) {
	_, _ = c.Telegram.SendMessage(chatID, text)
}

// reply edits the status message when there is one and sends a new message
// otherwise.
func (c *CommandImpl) reply(chatID int64, statusID int, text string) error {
	if statusID != 0 {
		if err := c.Telegram.EditMessageText(chatID, statusID, text); err == nil {
			return nil
		}
	}
	_, err := c.Telegram.SendMessage(chatID, text)
	return err
}

func commandName(msg *tgbotapi.Message) string {
	if len(msg.Photo) > 0 {
		return "publish"
	}
	if cmd := msg.Command(); cmd != "" {
		return cmd
	}
	return "unknown"
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://")
}
