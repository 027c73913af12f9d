package telegramimpl

import (
	"context"
	"fmt"

	"github.com/orgball2608/insta-media-telegram-bot/pkg/retry"
)

func (tg *TelegramImpl) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := tg.TgBot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file %s: %w", fileID, err)
	}
	return tg.download(ctx, fileURL)
}

func (tg *TelegramImpl) download(ctx context.Context, fileURL string) ([]byte, error) {
	data, err := retry.DoValue(ctx, tg.Logger, "TelegramDownload", func() ([]byte, error) {
		resp, err := tg.http.R().SetContext(ctx).Get(fileURL)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			err := fmt.Errorf("download returned http %d", resp.StatusCode())
			if resp.StatusCode() < 500 {
				return nil, retry.Permanent(err)
			}
			return nil, err
		}
		return resp.Body(), nil
	}, tg.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("downloaded file is empty")
	}
	return data, nil
}
