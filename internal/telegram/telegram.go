package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go

type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	// SendMarkdown sends text that is already escaped for MarkdownV2.
	SendMarkdown(chatID int64, text string) (int, error)
	EditMessageText(chatID int64, messageID int, newText string) error

	// DownloadFile fetches the content of a file attached to a message.
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)

	// SendMessageToUser notifies the bot owner. Failures are only logged.
	SendMessageToUser(msg string)
}
