package topas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	cur := NewCursor([]string{"one", "two"})
	assert.Equal(t, 2, cur.Len())

	line, ok := cur.Peek()
	require.True(t, ok)
	assert.Equal(t, "one", line)
	assert.Equal(t, 2, cur.Len(), "peek must not consume")

	line, ok = cur.Pop()
	require.True(t, ok)
	assert.Equal(t, "one", line)

	line, ok = cur.Pop()
	require.True(t, ok)
	assert.Equal(t, "two", line)

	_, ok = cur.Pop()
	assert.False(t, ok)
	_, ok = cur.Peek()
	assert.False(t, ok)
	assert.Equal(t, 0, cur.Len())
}
