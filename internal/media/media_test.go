package media

import (
	"fmt"
	"testing"

	"github.com/orgball2608/insta-media-telegram-bot/internal/oembed"
	"github.com/orgball2608/insta-media-telegram-bot/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		kind        Kind
	}{
		{"nil", nil, KindNone},
		{"upload failure", &UploadFailedError{Status: "fail"}, KindUploadFailed},
		{"wrapped configuration failure", fmt.Errorf("publish: %w", &ConfigurationFailedError{Status: "fail", UploadID: "1"}), KindConfigurationFailed},
		{"transport", errors.WrapWithCode(fmt.Errorf("eof"), errors.CodeTransport, "request failed"), KindTransport},
		{"decode", errors.WrapWithCode(fmt.Errorf("bad json"), errors.CodeDecode, "decode"), KindDecode},
		{"invalid command", ErrInvalidCommand, KindInvalid},
		{"plain error", oembed.ErrNoMediaID, KindUnknown},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.kind, KindOf(testCase.err))
		})
	}
}

func TestStatusErrors(t *testing.T) {
	upload := &UploadFailedError{Status: "fail"}
	assert.ErrorIs(t, upload, ErrUploadFailed)
	assert.NotErrorIs(t, upload, ErrConfigurationFailed)
	assert.Contains(t, upload.Error(), `"fail"`)

	configure := &ConfigurationFailedError{Status: "spam", UploadID: "999"}
	assert.ErrorIs(t, configure, ErrConfigurationFailed)
	assert.Contains(t, configure.Error(), "999")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "upload_failed", KindUploadFailed.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
