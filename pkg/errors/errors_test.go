package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	t.Run("returns the code of a wrapped error", func(t *testing.T) {
		err := WrapWithCode(fmt.Errorf("dial tcp: refused"), CodeTransport, "request failed")
		assert.Equal(t, CodeTransport, GetCode(err))
		assert.True(t, IsTransport(err))
		assert.False(t, IsDecode(err))
	})

	t.Run("looks through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("get media: %w", WrapWithCode(fmt.Errorf("bad json"), CodeDecode, "decode"))
		assert.Equal(t, CodeDecode, GetCode(err))
	})

	t.Run("skips uncoded layers", func(t *testing.T) {
		err := Wrap(WrapWithCode(fmt.Errorf("x"), CodeInvalid, "invalid"), "outer")
		assert.Equal(t, CodeInvalid, GetCode(err))
	})

	t.Run("empty for plain errors", func(t *testing.T) {
		assert.Equal(t, "", GetCode(fmt.Errorf("plain")))
		assert.Equal(t, "", GetCode(nil))
	})
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "msg"))
	assert.Nil(t, WrapWithCode(nil, CodeDecode, "msg"))
}

func TestErrorMessage(t *testing.T) {
	err := Wrap(fmt.Errorf("inner"), "outer")
	assert.Equal(t, "outer: inner", err.Error())
	assert.Equal(t, "outer", GetMessage(err))
	assert.Equal(t, "plain", GetMessage(fmt.Errorf("plain")))
}

func TestSentinels(t *testing.T) {
	notFound := Wrap(ErrNotFound, "publication")
	assert.True(t, IsNotFound(fmt.Errorf("mark deleted: %w", notFound)))
	assert.False(t, IsUnauthorized(notFound))
	assert.Equal(t, "publication: not found", notFound.Error())

	unauthorized := Wrap(ErrUnauthorized, "no credentials")
	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, Is(unauthorized, ErrUnauthorized))

	invalid := WrapWithCode(ErrInvalidInput, CodeInvalid, "invalid command")
	assert.True(t, Is(invalid, ErrInvalidInput))
	assert.Equal(t, CodeInvalid, GetCode(invalid))
}
