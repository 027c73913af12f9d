package commandimpl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-media-telegram-bot/internal/domain"
	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	mock_media "github.com/orgball2608/insta-media-telegram-bot/internal/media/mocks"
	mock_oembed "github.com/orgball2608/insta-media-telegram-bot/internal/oembed/mocks"
	"github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication"
	mock_publication "github.com/orgball2608/insta-media-telegram-bot/internal/repositories/publication/mocks"
	mock_telegram "github.com/orgball2608/insta-media-telegram-bot/internal/telegram/mocks"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/config"
	pkgerrors "github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	ownerID    int64 = 7
	strangerID int64 = 8
	chatID     int64 = 100
)

type fakeLimiter struct {
	allow bool
}

func (f fakeLimiter) Allow(int64) bool { return f.allow }

type fixture struct {
	cmd      *CommandImpl
	media    *mock_media.MockClient
	oembed   *mock_oembed.MockResolver
	telegram *mock_telegram.MockClient
	repo     *mock_publication.MockRepository
}

func newFixture(t *testing.T, allow bool) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := fixture{
		media:    mock_media.NewMockClient(ctrl),
		oembed:   mock_oembed.NewMockResolver(ctrl),
		telegram: mock_telegram.NewMockClient(ctrl),
		repo:     mock_publication.NewMockRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.Telegram.User = ownerID
	cfg.Telegram.Workers = 2
	cfg.Telegram.HistorySize = 10

	cmd, err := New(Opts{
		Media:           f.media,
		Oembed:          f.oembed,
		Telegram:        f.telegram,
		PublicationRepo: f.repo,
		Limiter:         fakeLimiter{allow: allow},
		Logger:          logger.NewNop(),
		Config:          cfg,
	})
	require.NoError(t, err)
	t.Cleanup(cmd.Close)

	f.cmd = cmd
	return f
}

func commandUpdate(from int64, text string) tgbotapi.Update {
	name, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: from},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
		},
	}
}

func photoUpdate(from int64, caption string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 2,
			From:      &tgbotapi.User{ID: from},
			Chat:      &tgbotapi.Chat{ID: chatID},
			Caption:   caption,
			Photo: []tgbotapi.PhotoSize{
				{FileID: "small", Width: 90, Height: 90},
				{FileID: "large", Width: 1280, Height: 1280},
				{FileID: "medium", Width: 320, Height: 320},
			},
		},
	}
}

func TestPublishPhoto(t *testing.T) {
	f := newFixture(t, true)
	photo := []byte{0xff, 0xd8}

	gomock.InOrder(
		f.telegram.EXPECT().SendMessage(chatID, "Publishing photo...").Return(55, nil),
		f.telegram.EXPECT().DownloadFile(gomock.Any(), "large").Return(photo, nil),
		f.media.EXPECT().Publish(gomock.Any(), domain.PublishCommand{Caption: "hi", Photo: photo}).
			Return(&domain.PublishResult{
				Status:   domain.StatusOK,
				UploadID: "999",
				Media:    &domain.MediaItem{ID: "1_2", Code: "AbC"},
			}, nil),
		f.repo.EXPECT().Create(gomock.Any(), domain.Publication{
			ChatID:   chatID,
			UploadID: "999",
			MediaID:  "1_2",
			Code:     "AbC",
			Caption:  "hi",
		}).Return(nil),
		f.telegram.EXPECT().EditMessageText(chatID, 55, "Published!\nhttps://www.instagram.com/p/AbC/").Return(nil),
	)

	f.cmd.handleUpdate(context.Background(), photoUpdate(ownerID, "/post hi"))
}

func TestPublishPhotoUploadRejected(t *testing.T) {
	f := newFixture(t, true)

	f.telegram.EXPECT().SendMessage(chatID, gomock.Any()).Return(55, nil)
	f.telegram.EXPECT().DownloadFile(gomock.Any(), "large").Return([]byte{1}, nil)
	f.media.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil, &media.UploadFailedError{Status: "fail"})
	f.telegram.EXPECT().EditMessageText(chatID, 55, gomock.Any()).DoAndReturn(
		func(_ int64, _ int, text string) error {
			assert.Contains(t, text, "rejected the upload")
			assert.Contains(t, text, `"fail"`)
			return nil
		})

	f.cmd.handleUpdate(context.Background(), photoUpdate(ownerID, ""))
}

func TestPublishPhotoFromStranger(t *testing.T) {
	f := newFixture(t, true)

	f.telegram.EXPECT().SendMessage(chatID, "Only the bot owner can publish photos.").Return(1, nil)

	f.cmd.handleUpdate(context.Background(), photoUpdate(strangerID, "hi"))
}

func TestRateLimited(t *testing.T) {
	f := newFixture(t, false)

	f.telegram.EXPECT().SendMessage(chatID, "Too many requests, please slow down.").Return(1, nil)

	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/media 1_2"))
}

func TestIgnoresPlainText(t *testing.T) {
	f := newFixture(t, true)

	update := tgbotapi.Update{Message: &tgbotapi.Message{
		From: &tgbotapi.User{ID: ownerID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: "hello",
	}}
	f.cmd.handleUpdate(context.Background(), update)
	f.cmd.handleUpdate(context.Background(), tgbotapi.Update{})
}

func TestMediaCommand(t *testing.T) {
	record := &domain.MediaRecord{
		Status: domain.StatusOK,
		Items: []domain.MediaItem{{
			ID:           "123_456",
			Code:         "AbC",
			LikeCount:    1234,
			CommentCount: 56,
			User:         &domain.User{Username: "some_one"},
			Caption:      &domain.Caption{Text: "sunset!"},
		}},
	}

	t.Run("by id", func(t *testing.T) {
		f := newFixture(t, true)

		f.media.EXPECT().Get(gomock.Any(), "123_456").Return(record, nil)
		f.telegram.EXPECT().SendMarkdown(chatID, gomock.Any()).DoAndReturn(
			func(_ int64, text string) (int, error) {
				assert.Contains(t, text, `123\_456`)
				assert.Contains(t, text, "@some\\_one")
				assert.Contains(t, text, "1,234 likes")
				assert.Contains(t, text, "sunset\\!")
				assert.Contains(t, text, `https://www\.instagram\.com/p/AbC/`)
				return 1, nil
			})

		f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/media 123_456"))
	})

	t.Run("by url", func(t *testing.T) {
		f := newFixture(t, true)
		postURL := "https://www.instagram.com/p/AbC/"

		f.media.EXPECT().GetByURL(gomock.Any(), postURL).Return(record, nil)
		f.telegram.EXPECT().SendMarkdown(chatID, gomock.Any()).Return(1, nil)

		f.cmd.handleUpdate(context.Background(), commandUpdate(strangerID, "/media "+postURL))
	})

	t.Run("missing argument", func(t *testing.T) {
		f := newFixture(t, true)

		f.telegram.EXPECT().SendMessage(chatID, gomock.Any()).Return(1, nil)

		f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/media"))
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newFixture(t, true)

		f.media.EXPECT().Get(gomock.Any(), "1").
			Return(nil, pkgerrors.WrapWithCode(errors.New("timeout"), pkgerrors.CodeTransport, "request failed"))
		f.telegram.EXPECT().SendMessage(chatID, "Could not reach Instagram, please try again later.").Return(1, nil)

		f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/media 1"))
	})
}

func TestDeleteCommand(t *testing.T) {
	t.Run("by url", func(t *testing.T) {
		f := newFixture(t, true)
		postURL := "https://www.instagram.com/p/AbC/"

		gomock.InOrder(
			f.oembed.EXPECT().MediaID(gomock.Any(), postURL).Return("1_2", nil),
			f.media.EXPECT().Delete(gomock.Any(), "1_2").Return(&domain.DeleteResult{DidDelete: true, Status: domain.StatusOK}, nil),
			f.repo.EXPECT().MarkDeleted(gomock.Any(), "1_2").Return(publication.ErrNotFound),
			f.telegram.EXPECT().SendMessage(chatID, "Deleted 1_2.").Return(1, nil),
		)

		f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/delete "+postURL))
	})

	t.Run("not deleted", func(t *testing.T) {
		f := newFixture(t, true)

		f.media.EXPECT().Delete(gomock.Any(), "1_2").Return(&domain.DeleteResult{Status: "fail"}, nil)
		f.telegram.EXPECT().SendMessage(chatID, `Instagram did not delete 1_2 (status "fail").`).Return(1, nil)

		f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/delete 1_2"))
	})

	t.Run("stranger", func(t *testing.T) {
		f := newFixture(t, true)

		f.telegram.EXPECT().SendMessage(chatID, "Only the bot owner can delete posts.").Return(1, nil)

		f.cmd.handleUpdate(context.Background(), commandUpdate(strangerID, "/delete 1_2"))
	})
}

func TestOembedCommand(t *testing.T) {
	f := newFixture(t, true)
	postURL := "https://www.instagram.com/p/AbC/"

	f.oembed.EXPECT().Resolve(gomock.Any(), postURL).
		Return(&domain.OembedResponse{MediaID: "1_2", AuthorName: "someone"}, nil)
	f.telegram.EXPECT().SendMessage(chatID, "Media id: 1_2\nAuthor: someone").Return(1, nil)

	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/oembed "+postURL))
}

func TestHistoryCommand(t *testing.T) {
	f := newFixture(t, true)
	created := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

	f.repo.EXPECT().GetByChatID(gomock.Any(), chatID, 10).Return([]*domain.Publication{
		{MediaID: "1_2", Code: "AbC", Caption: "hi", CreatedAt: created},
		{MediaID: "3_4", CreatedAt: created, DeletedAt: &created},
	}, nil)
	f.telegram.EXPECT().SendMessage(chatID, gomock.Any()).DoAndReturn(
		func(_ int64, text string) (int, error) {
			assert.Contains(t, text, "1. 2024-06-01 12:30  1_2  https://www.instagram.com/p/AbC/")
			assert.Contains(t, text, "   hi")
			assert.Contains(t, text, "2. 2024-06-01 12:30  3_4  (deleted)")
			return 1, nil
		})

	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/history"))
}

func TestHelpAndUnknownCommands(t *testing.T) {
	f := newFixture(t, true)

	f.telegram.EXPECT().SendMessage(chatID, helpMessage).Return(1, nil).Times(2)
	f.telegram.EXPECT().SendMessage(chatID, gomock.Any()).Return(1, nil)

	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/start"))
	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/help"))
	f.cmd.handleUpdate(context.Background(), commandUpdate(ownerID, "/nope"))
}

func TestHandleCommandLoop(t *testing.T) {
	t.Run("stops on cancel", func(t *testing.T) {
		f := newFixture(t, true)
		updates := make(chan tgbotapi.Update)

		f.telegram.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(updates))
		f.telegram.EXPECT().StopReceivingUpdates()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.cmd.HandleCommand(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns when the channel closes", func(t *testing.T) {
		f := newFixture(t, true)
		updates := make(chan tgbotapi.Update)
		close(updates)

		f.telegram.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(updates))

		err := f.cmd.HandleCommand(context.Background())
		require.Error(t, err)
	})
}

func TestCaptionText(t *testing.T) {
	testCases := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"hi", "hi"},
		{"/post hi there", "hi there"},
		{"/post@mybot hi", "hi"},
		{"/post", ""},
		{"/postcard stays", "/postcard stays"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.out, captionText(testCase.in), testCase.in)
	}
}
