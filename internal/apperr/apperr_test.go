package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := New(KindValidation, "required field missing")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(err, &Error{Kind: KindValidation, Reason: "required field missing"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindValidation, Reason: "invalid status value"}))
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("list: %w", Wrap(KindStorage, "storage unavailable", cause))

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Equal(t, "storage unavailable", Reason(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, "", Reason(errors.New("boom")))
	assert.Equal(t, "not_found", ErrNotFound.Error())
}
