package topas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Run("fitted scalar with error", func(t *testing.T) {
		v, err := ParseValue("@ 1.2345`_0.001")
		require.NoError(t, err)
		assert.Equal(t, 1.2345, v.Val)
		assert.Equal(t, 0.001, v.Err)
		assert.True(t, v.Fitted)
		assert.Empty(t, v.Constraint)
	})

	t.Run("fixed scalar", func(t *testing.T) {
		v, err := ParseValue("1.5")
		require.NoError(t, err)
		assert.Equal(t, 1.5, v.Val)
		assert.Equal(t, 0.0, v.Err)
		assert.False(t, v.Fitted)
	})

	t.Run("negative scalar with exponent", func(t *testing.T) {
		v, err := ParseValue("-4.02901455e-007")
		require.NoError(t, err)
		assert.Equal(t, -4.02901455e-007, v.Val)
		assert.False(t, v.Fitted)
	})

	t.Run("fitted scalar with constraint text", func(t *testing.T) {
		v, err := ParseValue("@  4.02901455e-007`_6.025e-008_LIMIT_MIN_1e-015")
		require.NoError(t, err)
		assert.Equal(t, 4.02901455e-007, v.Val)
		assert.Equal(t, 6.025e-008, v.Err)
		assert.True(t, v.Fitted)
		assert.Equal(t, "LIMIT_MIN_1e-015", v.Constraint)
	})

	t.Run("fraction form", func(t *testing.T) {
		v, err := ParseValue("=1/3; :  0.33333")
		require.NoError(t, err)
		assert.Equal(t, 1.0/3.0, v.Val)
		assert.Equal(t, 0.0, v.Err)
		assert.False(t, v.Fitted)
		assert.Equal(t, "0.33333", v.Constraint)
	})

	t.Run("surrounding whitespace is ignored", func(t *testing.T) {
		v, err := ParseValue("  3.75 ")
		require.NoError(t, err)
		assert.Equal(t, 3.75, v.Val)
	})

	t.Run("repeated reads do not mutate", func(t *testing.T) {
		v, err := ParseValue("@ 2.5`_0.1")
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			assert.Equal(t, 2.5, v.Val)
			assert.Equal(t, 0.1, v.Err)
			assert.True(t, v.Fitted)
		}
	})

	t.Run("unparseable tokens", func(t *testing.T) {
		for _, token := range []string{"", "abc", "=1/0; : 0.0", "@"} {
			_, err := ParseValue(token)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr, "token %q", token)
		}
	})
}
