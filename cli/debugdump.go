package cli

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/aledsdavies/luz/internal/token"
)

// Trace is the --debug artifact: the classified token stream plus the
// debug-formatted value of every top-level statement. It is encoded with
// canonical CBOR so two runs of the same script produce byte-identical
// traces, which is what lets tests keep them as golden fixtures.
type Trace struct {
	Source  string       `cbor:"source"`
	Tokens  []TraceToken `cbor:"tokens"`
	Results []string     `cbor:"results"`
}

type TraceToken struct {
	Kind    string `cbor:"kind"`
	Literal string `cbor:"literal"`
	Line    int    `cbor:"line"`
	Col     int    `cbor:"col"`
}

var traceEncMode, _ = cbor.CanonicalEncOptions().EncMode()

// NewTrace classifies toks into the serialisable trace form.
func NewTrace(source string, toks []token.Token, results []string) *Trace {
	t := &Trace{Source: source, Results: results}
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			break
		}
		t.Tokens = append(t.Tokens, TraceToken{
			Kind:    tok.Kind.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Col:     tok.Pos.Col,
		})
	}
	return t
}

// Encode serialises the trace as canonical CBOR.
func (t *Trace) Encode() ([]byte, error) {
	return traceEncMode.Marshal(t)
}

// DecodeTrace is the inverse of Encode, used by tests to diff traces
// structurally instead of byte-wise.
func DecodeTrace(data []byte) (*Trace, error) {
	var t Trace
	if err := cbor.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
