package interp

import (
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/scope"
	"github.com/aledsdavies/luz/internal/value"
)

// ReadLineFunc blocks until one line of input is available (or EOF). The
// prompt is whatever `get`/`getln` was given, already plain-formatted;
// empty for the bare forms.
type ReadLineFunc func(prompt string) (string, error)

// Hooks are the lifecycle callbacks the embedding front-end may install.
// Nil hooks are skipped.
type Hooks struct {
	OnStart   func()
	OnSuccess func()
	OnError   func(luzerr.Code)
	OnEnd     func(luzerr.Code)
}

// Options wires the four collaborators spec §1 describes (program output,
// error output, stdin, lifecycle), plus the seedable RNG injection point
// for `maybe` and an optional logger for internal diagnostics. Program
// output only ever flows through LogFn — never through Logger.
type Options struct {
	LogFn    func(string)
	ErrFn    func(string)
	ReadLine ReadLineFunc
	Hooks    Hooks

	// Rand backs `maybe` and `as maybe`. Nil means time-seeded.
	Rand *rand.Rand

	// Logger receives internal diagnostics (statement counts, loop
	// tracing) at Debug level. Nil means discard.
	Logger *slog.Logger

	// OnResult, when set, receives the value of every top-level
	// statement. The CLI's --debug trace hangs off this.
	OnResult func(value.Value)
}

// Interpreter owns one flat scope store and one RNG; it is not safe for
// concurrent use and is meant to run one program per instance.
type Interpreter struct {
	opts    Options
	rng     *rand.Rand
	logger  *slog.Logger
	scope   *scope.Scope
	getToks []string // pending whitespace-separated tokens for `get`
}

func New(opts Options) *Interpreter {
	if opts.LogFn == nil {
		opts.LogFn = func(string) {}
	}
	if opts.ErrFn == nil {
		opts.ErrFn = func(string) {}
	}
	if opts.ReadLine == nil {
		opts.ReadLine = func(string) (string, error) { return "", io.EOF }
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		opts:   opts,
		rng:    rng,
		logger: logger,
		scope:  scope.New(),
	}
}

// Run tokenizes, parses and evaluates src as a whole program, firing the
// lifecycle hooks around it. The returned error is nil on success and
// carries the exit code otherwise.
func (in *Interpreter) Run(src string) *luzerr.Error {
	in.fire(in.opts.Hooks.OnStart)
	err := in.runProgram(src)
	if err != nil {
		if in.opts.Hooks.OnError != nil {
			in.opts.Hooks.OnError(err.Code)
		}
		if in.opts.Hooks.OnEnd != nil {
			in.opts.Hooks.OnEnd(err.Code)
		}
		return err
	}
	in.fire(in.opts.Hooks.OnSuccess)
	if in.opts.Hooks.OnEnd != nil {
		in.opts.Hooks.OnEnd(luzerr.Success)
	}
	return nil
}

func (in *Interpreter) fire(hook func()) {
	if hook != nil {
		hook()
	}
}

func (in *Interpreter) runProgram(src string) *luzerr.Error {
	stmts, err := ParseProgram(src)
	if err != nil {
		return asLuzErr(err)
	}
	in.logger.Debug("parsed program", "statements", len(stmts))

	for _, stmt := range stmts {
		v, sig, lerr := in.eval(stmt, in.scope)
		if lerr != nil {
			return lerr
		}
		if sig != nil {
			// spec §9 open question, decided: a break/continue that
			// escapes every loop is a SemanticError at evaluation time.
			return luzerr.Semantic(stmt.Pos(), "'%s' outside loop", sig.Kind)
		}
		if in.opts.OnResult != nil {
			in.opts.OnResult(v)
		}
	}
	return nil
}

// asLuzErr narrows the parser's error interface back down to the concrete
// *luzerr.Error every Luz package produces; anything else is an internal
// fault.
func asLuzErr(err error) *luzerr.Error {
	if le, ok := err.(*luzerr.Error); ok {
		return le
	}
	return &luzerr.Error{Code: luzerr.InternalInterpreterError, Message: err.Error()}
}

// randIndex draws a uniform index in [0,n); it is the one RNG entry point
// so tests can seed Options.Rand and get deterministic `maybe` results.
func (in *Interpreter) randIndex(n int) int {
	return in.rng.Intn(n)
}

// nextGetToken implements `get`'s token buffer: one whitespace-separated
// token per call, reading (and re-prompting on blank lines) only when the
// buffer is empty. ok is false at EOF.
func (in *Interpreter) nextGetToken(prompt string) (string, bool) {
	for len(in.getToks) == 0 {
		line, err := in.opts.ReadLine(prompt)
		if err != nil {
			return "", false
		}
		in.getToks = strings.Fields(line)
	}
	t := in.getToks[0]
	in.getToks = in.getToks[1:]
	return t, true
}

// Scope exposes the binding store for white-box assertions in tests and
// the CLI's debug dump.
func (in *Interpreter) Scope() *scope.Scope { return in.scope }
