// Package luzerr defines Luz's error kinds and the stable exit codes of
// spec §6/§7, plus "Did you mean: x?" suggestions for undefined-name
// errors, grounded on the same fuzzy-matching idiom the teacher repo uses
// for command-name suggestions.
package luzerr

import (
	"fmt"
	"sort"

	"github.com/aledsdavies/luz/internal/token"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Code is one of the stable exit codes spec §6 defines. The CLI front end
// maps it straight to os.Exit; the core only ever produces 3, 4, 5, 8, 10
// and 11 (ErrorCode and InvalidFilePath are CLI-only and never emitted
// here).
type Code int

const (
	Success                  Code = 0
	ErrorCode                Code = 1
	IncorrectUsage           Code = 2
	SyntaxErrorCode          Code = 3
	SemanticErrorCode        Code = 4
	RuntimeErrorCode         Code = 5
	FileNotFound             Code = 6
	PermissionDenied         Code = 7
	InvalidInstructionCode   Code = 8
	OutOfMemory              Code = 9
	InternalInterpreterError Code = 10
	UnimplementedFeature     Code = 11
	InvalidFilePath          Code = 12
)

// Error is the one error type every Luz package returns: a human message,
// the exit code it maps to, the source position it occurred at (zero
// value if not applicable), and an optional suggestion.
type Error struct {
	Code       Code
	Message    string
	Pos        token.Pos
	Suggestion string
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Pos.Line != 0 {
		msg = fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	if e.Suggestion != "" {
		msg += "\n  " + e.Suggestion
	}
	return msg
}

func newErr(code Code, pos token.Pos, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func Syntax(pos token.Pos, format string, args ...any) *Error {
	return newErr(SyntaxErrorCode, pos, format, args...)
}

func Semantic(pos token.Pos, format string, args ...any) *Error {
	return newErr(SemanticErrorCode, pos, format, args...)
}

func Invalid(pos token.Pos, format string, args ...any) *Error {
	return newErr(InvalidInstructionCode, pos, format, args...)
}

func Runtime(pos token.Pos, format string, args ...any) *Error {
	return newErr(RuntimeErrorCode, pos, format, args...)
}

func Unimplemented(pos token.Pos, format string, args ...any) *Error {
	return newErr(UnimplementedFeature, pos, format, args...)
}

// UndefinedVariable builds the SemanticError for a name that has no
// binding, appending a "Did you mean: x?" suggestion when a bound name is
// a close fuzzy match — the same style of hint the teacher gives for
// mistyped command names.
func UndefinedVariable(pos token.Pos, name string, known []string) *Error {
	e := Semantic(pos, "undefined variable %q", name)
	if best := closestMatch(name, known); best != "" {
		e.Suggestion = fmt.Sprintf("Did you mean: %s?", best)
	}
	return e
}

func closestMatch(name string, known []string) string {
	if len(known) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, known)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
