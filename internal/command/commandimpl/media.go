package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/formatter"
)

const captionPreview = 200

func (c *CommandImpl) handleMedia(ctx context.Context, chatID int64, args string) error {
	if args == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a media id or post URL: /media <id|url>")
		return err
	}

	var (
		rec *domain.MediaRecord
		err error
	)
	if isURL(args) {
		rec, err = c.Media.GetByURL(ctx, args)
	} else {
		rec, err = c.Media.Get(ctx, args)
	}
	if err != nil {
		c.send(chatID, failureMessage(err))
		return fmt.Errorf("failed to get media %s: %w", args, err)
	}

	item := rec.First()
	if item == nil || rec.Status != domain.StatusOK {
		_, err := c.Telegram.SendMessage(chatID, "No media found.")
		return err
	}

	_, err = c.Telegram.SendMarkdown(chatID, formatMedia(item))
	return err
}

func formatMedia(item *domain.MediaItem) string {
	var sb strings.Builder

	sb.WriteString("*Media* ")
	sb.WriteString(formatter.EscapeMarkdownV2(item.ID))
	sb.WriteString("\n")

	if item.User != nil && item.User.Username != "" {
		sb.WriteString("by @")
		sb.WriteString(formatter.EscapeMarkdownV2(item.User.Username))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "❤️ %s likes  💬 %s comments\n",
		formatter.EscapeMarkdownV2(formatter.FormatNumber(item.LikeCount)),
		formatter.EscapeMarkdownV2(formatter.FormatNumber(item.CommentCount)))

	if text := item.CaptionText(); text != "" {
		sb.WriteString("\n")
		sb.WriteString(formatter.EscapeMarkdownV2(formatter.Truncate(text, captionPreview)))
		sb.WriteString("\n")
	}

	if link := item.Permalink(); link != "" {
		sb.WriteString("\n")
		sb.WriteString(formatter.EscapeMarkdownV2(link))
	}

	return sb.String()
}

func (c *CommandImpl) handleOembed(ctx context.Context, chatID int64, args string) error {
	if !isURL(args) {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a post URL: /oembed <url>")
		return err
	}

	out, err := c.Oembed.Resolve(ctx, args)
	if err != nil {
		c.send(chatID, failureMessage(err))
		return fmt.Errorf("failed to resolve %s: %w", args, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Media id: %s\n", out.MediaID)
	if out.AuthorName != "" {
		fmt.Fprintf(&sb, "Author: %s\n", out.AuthorName)
	}
	if out.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", formatter.Truncate(out.Title, captionPreview))
	}

	_, err = c.Telegram.SendMessage(chatID, strings.TrimRight(sb.String(), "\n"))
	return err
}
