package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/aledsdavies/luz/internal/interp"
	"github.com/aledsdavies/luz/internal/lexer"
	"github.com/aledsdavies/luz/internal/luzerr"
	"github.com/aledsdavies/luz/internal/value"
)

// RunOptions bundles the streams and switches one script execution needs,
// so tests can drive RunFile with buffers instead of the process streams.
type RunOptions struct {
	Debug   bool
	NoColor bool

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// ResolveScriptPath applies the path rules of the usage contract: "."
// means main.luz in the current directory, and only .luz files are
// accepted.
func ResolveScriptPath(path string) (string, *luzerr.Error) {
	if path == "." {
		path = "main.luz"
	}
	if !strings.EqualFold(filepath.Ext(path), ".luz") {
		return "", &luzerr.Error{Code: luzerr.InvalidFilePath, Message: fmt.Sprintf("%q is not a .luz file", path)}
	}
	return path, nil
}

// RunFile loads and executes one Luz script, returning the process exit
// code. All diagnostics go to opts.Stderr; program output to opts.Stdout.
func RunFile(path string, opts RunOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}

	path, perr := ResolveScriptPath(path)
	if perr != nil {
		FormatError(opts.Stderr, perr, ShouldUseColor(opts.NoColor, nil))
		return int(perr.Code)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		cfg = &Config{}
		fmt.Fprintf(opts.Stderr, "warning: %v\n", err)
	}
	useColor := ShouldUseColor(opts.NoColor, cfg)

	src, lerr := readScript(path)
	if lerr != nil {
		FormatError(opts.Stderr, lerr, useColor)
		return int(lerr.Code)
	}

	var rng *rand.Rand
	if cfg.Seed != nil {
		rng = rand.New(rand.NewSource(*cfg.Seed))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Debug {
		logger = newDebugLogger(opts.Stderr)
	}

	var results []string
	reader := bufio.NewReader(opts.Stdin)

	in := interp.New(interp.Options{
		LogFn: func(s string) { fmt.Fprint(opts.Stdout, s) },
		ErrFn: func(s string) {
			fmt.Fprint(opts.Stderr, Colorize(s, ColorRed, useColor))
		},
		ReadLine: func(prompt string) (string, error) {
			if prompt != "" {
				fmt.Fprint(opts.Stdout, prompt)
			}
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return "", err
			}
			return strings.TrimRight(line, "\r\n"), nil
		},
		Rand:   rng,
		Logger: logger,
		Hooks: interp.Hooks{
			OnStart: func() { logger.Debug("script started", "path", path) },
			OnEnd:   func(code luzerr.Code) { logger.Debug("script finished", "code", int(code), "status", CodeName(code)) },
		},
		OnResult: func(v value.Value) {
			if opts.Debug {
				formatted := value.FormatDebug(v)
				results = append(results, formatted)
				fmt.Fprintf(opts.Stderr, "%s\n", Colorize("=> "+formatted, ColorGray, useColor))
			}
		},
	})

	runErr := in.Run(src)
	if opts.Debug {
		writeTrace(path, src, results, opts.Stderr)
	}
	if runErr != nil {
		FormatError(opts.Stderr, runErr, useColor)
		return int(runErr.Code)
	}
	return int(luzerr.Success)
}

func readScript(path string) (string, *luzerr.Error) {
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return "", &luzerr.Error{Code: luzerr.FileNotFound, Message: fmt.Sprintf("no such file: %s", path)}
	case os.IsPermission(err):
		return "", &luzerr.Error{Code: luzerr.PermissionDenied, Message: fmt.Sprintf("permission denied: %s", path)}
	case err != nil:
		return "", &luzerr.Error{Code: luzerr.ErrorCode, Message: err.Error()}
	}
	return string(data), nil
}

// newDebugLogger builds the --debug slog sink: text format on stderr with
// the timestamp dropped, so debug output is stable across runs.
func newDebugLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	}))
}

// writeTrace re-tokenises the script (debug mode only) and drops the
// canonical CBOR trace next to it.
func writeTrace(path, src string, results []string, stderr io.Writer) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		fmt.Fprintf(stderr, "warning: trace skipped: %v\n", err)
		return
	}
	data, err := NewTrace(filepath.Base(path), toks, results).Encode()
	if err != nil {
		fmt.Fprintf(stderr, "warning: trace skipped: %v\n", err)
		return
	}
	tracePath := path + ".trace"
	if err := os.WriteFile(tracePath, data, 0o644); err != nil {
		fmt.Fprintf(stderr, "warning: could not write %s: %v\n", tracePath, err)
	}
}
