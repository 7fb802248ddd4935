package presenter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorStream_DropsWhenFull(t *testing.T) {
	stream := NewErrorStream(1)

	stream.Forward(errors.New("first"))
	stream.Forward(errors.New("second"))
	stream.Forward(nil)

	require.Len(t, stream.Events(), 1)
	assert.EqualError(t, <-stream.Events(), "first")
}

func TestErrorStream_AccessDeniedIsTakenOnce(t *testing.T) {
	stream := NewErrorStream(1)
	assert.False(t, stream.TakeAccessMessage())

	stream.FlagAccessDenied()
	stream.FlagAccessDenied()

	assert.True(t, stream.TakeAccessMessage())
	assert.False(t, stream.TakeAccessMessage())
}
