package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/getcodekit/codekit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndError(t *testing.T) {
	err := errors.New(errors.ErrValidation, "bad manifest")
	assert.Equal(t, "[VALIDATION] bad manifest", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.Wrap(cause, errors.ErrFileWrite, "writing rules/go.md")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrIO, "nope"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrIO, "nope %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrCancelled, "user aborted after %d files", 3)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCancelled))
	assert.False(t, errors.IsErrorCode(err, errors.ErrIO))

	// Works through wrapping.
	wrapped := fmt.Errorf("outer: %w", err)
	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrCancelled))

	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrCancelled))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrManifestWrite,
		errors.GetErrorCode(errors.New(errors.ErrManifestWrite, "rename failed")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrIO, "read failed").WithDetail("path", "skills/a.md")
	assert.Equal(t, "skills/a.md", err.Details["path"])
}
