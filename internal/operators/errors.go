package operators

import (
	"fmt"

	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/token"
)

// opError defers the exit-code classification of an operator failure
// until the call site decides it (most operator failures are
// SemanticError; a few — growing or shrinking a fixed arr — are
// InvalidInstruction per spec §7). Default is SemanticError.
type opError struct {
	pos  token.Pos
	msg  string
	code luzerr.Code
}

func newErr(pos token.Pos, format string, args ...any) *opError {
	return &opError{pos: pos, msg: fmt.Sprintf(format, args...), code: luzerr.SemanticErrorCode}
}

func (e *opError) semantic() *opError { e.code = luzerr.SemanticErrorCode; return e }
func (e *opError) invalid() *opError  { e.code = luzerr.InvalidInstructionCode; return e }
func (e *opError) internal() *opError { e.code = luzerr.InternalInterpreterError; return e }

// ToLuzErr converts the deferred classification into the package-wide
// error type the evaluator and CLI understand.
func (e *opError) ToLuzErr() *luzerr.Error {
	return &luzerr.Error{Code: e.code, Message: e.msg, Pos: e.pos}
}
