package topas

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeclaration(t *testing.T) {
	t.Run("temperature from filename suffix", func(t *testing.T) {
		file, temperature, err := parseDeclaration(`xdd "runs/alpha_0024-0_C.xy"`)
		require.NoError(t, err)
		assert.Equal(t, "runs/alpha_0024-0_C.xy", file)
		assert.Equal(t, 24.0, temperature)
	})

	t.Run("all-zero digits mean zero degrees", func(t *testing.T) {
		_, temperature, err := parseDeclaration(`xdd "runs/alpha_0000-0_C.xy"`)
		require.NoError(t, err)
		assert.Equal(t, 0.0, temperature)
	})

	t.Run("filename without temperature suffix", func(t *testing.T) {
		_, _, err := parseDeclaration(`xdd "runs/alpha.xy"`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Contains(t, parseErr.Reason, "_0024-0_C.xy")
	})

	t.Run("malformed declaration", func(t *testing.T) {
		_, _, err := parseDeclaration("xdd runs/alpha.xy")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestParseMeasurement(t *testing.T) {
	decl := `xdd "runs/alpha_0150-0_C.xy"`

	block := func(extra ...string) []string {
		lines := []string{"\tbkg @ 12.3 5.1", "\tr_exp 5.43 r_wp 8.21", "\tstr"}
		lines = append(lines, corundumBlock()...)
		return append(lines, extra...)
	}

	t.Run("structures and fit-quality parameters", func(t *testing.T) {
		cur := NewCursor(append(block(), `xdd "runs/beta_0000-0_C.xy"`))
		m, err := parseMeasurement(context.Background(), decl, cur, Options{RequiredParams: DefaultRequiredParams})
		require.NoError(t, err)

		assert.Equal(t, "runs/alpha_0150-0_C.xy", m.SourceFile)
		assert.Equal(t, 150.0, m.Temperature)

		rExp, ok := m.Params["r_exp"]
		require.True(t, ok)
		assert.Equal(t, 5.43, rExp.Val)
		rWp, ok := m.Params["r_wp"]
		require.True(t, ok)
		assert.Equal(t, 8.21, rWp.Val)

		require.Len(t, m.Structures(), 1)
		s, ok := m.Structure("Corundum")
		require.True(t, ok)
		assert.Len(t, s.Atoms, 2)

		// The next measurement's declaration stays on the cursor.
		assert.Equal(t, 1, cur.Len())
	})

	t.Run("duplicate phase keeps the later block by default", func(t *testing.T) {
		lines := block("\tstr")
		lines = append(lines, corundumBlock()[0], corundumBlock()[2], "\t\tr_bragg 9.99")

		cur := NewCursor(lines)
		m, err := parseMeasurement(context.Background(), decl, cur, Options{RequiredParams: DefaultRequiredParams})
		require.NoError(t, err)

		require.Len(t, m.Structures(), 1)
		s, ok := m.Structure("Corundum")
		require.True(t, ok)
		rBragg, ok := s.Get("r_bragg")
		require.True(t, ok)
		assert.Equal(t, 9.99, rBragg.Val)
	})

	t.Run("duplicate phase rejected under the strict policy", func(t *testing.T) {
		lines := block("\tstr")
		lines = append(lines, corundumBlock()...)

		cur := NewCursor(lines)
		_, err := parseMeasurement(context.Background(), decl, cur, Options{
			RequiredParams:  DefaultRequiredParams,
			DuplicatePhases: PolicyReject,
		})
		var dup *DuplicatedParameterError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "Corundum", dup.Name)
	})

	t.Run("odd fit-quality pair count", func(t *testing.T) {
		cur := NewCursor([]string{"\tr_exp 5.43 r_wp"})
		_, err := parseMeasurement(context.Background(), decl, cur, Options{RequiredParams: DefaultRequiredParams})
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}
