package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	return tg.send(chatID, tgbotapi.NewMessage(chatID, text))
}

func (tg *TelegramImpl) SendMarkdown(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	return tg.send(chatID, msg)
}

func (tg *TelegramImpl) send(chatID int64, msg tgbotapi.MessageConfig) (int, error) {
	sent, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message", "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}

	tg.Logger.Debug("Message sent", "chatID", chatID, "messageID", sent.MessageID)
	return sent.MessageID, nil
}

func (tg *TelegramImpl) EditMessageText(chatID int64, messageID int, newText string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, newText)
	if _, err := tg.TgBot.Send(edit); err != nil {
		tg.Logger.Error("Error editing message", "chatID", chatID, "messageID", messageID, "error", err)
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (tg *TelegramImpl) SendMessageToUser(message string) {
	if tg.Config.Telegram.User == 0 {
		tg.Logger.Warn("Owner is not configured, dropping notification", "message", message)
		return
	}

	msg := tgbotapi.NewMessage(tg.Config.Telegram.User, message)
	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending message to user", "userID", tg.Config.Telegram.User, "error", err)
		return
	}

	tg.Logger.Info("Message sent to user", "userID", tg.Config.Telegram.User)
}

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}
