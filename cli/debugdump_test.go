package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/luz/internal/lexer"
)

// TestTraceRoundTrip tests that the CBOR trace decodes back to the same
// structure it was built from.
func TestTraceRoundTrip(t *testing.T) {
	toks, err := lexer.Tokenize(`x = 1; log x`)
	require.NoError(t, err)

	trace := NewTrace("t.luz", toks, []string{"1", "null"})
	data, err := trace.Encode()
	require.NoError(t, err)

	decoded, err := DecodeTrace(data)
	require.NoError(t, err)
	if diff := cmp.Diff(trace, decoded); diff != "" {
		t.Errorf("trace round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestTraceDeterministic tests that canonical encoding makes two runs of
// the same script byte-identical — the property golden fixtures rely on.
func TestTraceDeterministic(t *testing.T) {
	src := `v = ![1 2 3]; log v`
	toks1, err := lexer.Tokenize(src)
	require.NoError(t, err)
	toks2, err := lexer.Tokenize(src)
	require.NoError(t, err)

	a, err := NewTrace("t.luz", toks1, []string{"![1 2 3]"}).Encode()
	require.NoError(t, err)
	b, err := NewTrace("t.luz", toks2, []string{"![1 2 3]"}).Encode()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

// TestTraceStopsAtEOF tests that the terminator token is not serialised.
func TestTraceStopsAtEOF(t *testing.T) {
	toks, err := lexer.Tokenize(`1`)
	require.NoError(t, err)
	trace := NewTrace("t.luz", toks, nil)
	require.Len(t, trace.Tokens, 1)
	require.Equal(t, "NUMBER", trace.Tokens[0].Kind)
}
