package commandimpl

import (
	"errors"
	"fmt"

	"github.com/orgball2608/insta-media-telegram-bot/internal/media"
	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
)

// failureMessage turns a media error into a reply for the chat.
func failureMessage(err error) string {
	switch media.KindOf(err) {
	case media.KindUploadFailed:
		var uploadErr *media.UploadFailedError
		if errors.As(err, &uploadErr) {
			return fmt.Sprintf("Instagram rejected the upload (status %q).", uploadErr.Status)
		}
		return "Instagram rejected the upload."
	case media.KindConfigurationFailed:
		var configErr *media.ConfigurationFailedError
		if errors.As(err, &configErr) {
			return fmt.Sprintf("The photo was uploaded but publishing failed (status %q).", configErr.Status)
		}
		return "The photo was uploaded but publishing failed."
	case media.KindTransport:
		return "Could not reach Instagram, please try again later."
	case media.KindDecode:
		return "Instagram returned an unexpected response."
	case media.KindInvalid:
		return "Invalid request: the photo is missing, the caption is too long, or the id is empty."
	}

	if errors.Is(err, oembed.ErrNoMediaID) {
		return "Could not find a media id for that URL."
	}
	return "Something went wrong: " + err.Error()
}
