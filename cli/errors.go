package cli

import (
	"fmt"
	"io"

	"github.com/aledsdavies/luz/internal/luzerr"
)

// codeNames gives each exit code the stable name from the usage table, so
// diagnostics read "SyntaxError: ..." rather than a bare number.
var codeNames = map[luzerr.Code]string{
	luzerr.Success:                  "Success",
	luzerr.ErrorCode:                "Error",
	luzerr.IncorrectUsage:           "IncorrectUsage",
	luzerr.SyntaxErrorCode:          "SyntaxError",
	luzerr.SemanticErrorCode:        "SemanticError",
	luzerr.RuntimeErrorCode:         "RuntimeError",
	luzerr.FileNotFound:             "FileNotFound",
	luzerr.PermissionDenied:         "PermissionDenied",
	luzerr.InvalidInstructionCode:   "InvalidInstruction",
	luzerr.OutOfMemory:              "OutOfMemory",
	luzerr.InternalInterpreterError: "InternalInterpreterError",
	luzerr.UnimplementedFeature:     "UnimplementedFeature",
	luzerr.InvalidFilePath:          "InvalidFilePath",
}

// CodeName returns the stable name for an exit code.
func CodeName(code luzerr.Code) string {
	if n, ok := codeNames[code]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", int(code))
}

// FormatError writes an interpreter error to w, separating what broke
// (red), where (gray), and how to fix it (yellow).
func FormatError(w io.Writer, err *luzerr.Error, useColor bool) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", Colorize(CodeName(err.Code)+": ", ColorRed, useColor), err.Message)
	if err.Pos.Line != 0 {
		_, _ = fmt.Fprintf(w, "%s\n", Colorize(fmt.Sprintf("  at %s", err.Pos), ColorGray, useColor))
	}
	if err.Suggestion != "" {
		_, _ = fmt.Fprintf(w, "%s\n", Colorize("  "+err.Suggestion, ColorYellow, useColor))
	}
}
