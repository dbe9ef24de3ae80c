package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/luz/internal/luzerr"
)

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runFile(t *testing.T, path string, debug bool) (int, string, string) {
	t.Helper()
	var out, errOut strings.Builder
	code := RunFile(path, RunOptions{
		Debug:   debug,
		NoColor: true,
		Stdout:  &out,
		Stderr:  &errOut,
		Stdin:   strings.NewReader(""),
	})
	return code, out.String(), errOut.String()
}

// TestRunFileSuccess tests the happy path: program output on stdout,
// exit code 0.
func TestRunFileSuccess(t *testing.T) {
	path := writeScript(t, "ok.luz", `log "hi"`)
	code, out, errOut := runFile(t, path, false)
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi", out)
	assert.Empty(t, errOut)
}

// TestRunFileErrorCodes tests the stable exit-code table end to end.
func TestRunFileErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code luzerr.Code
	}{
		{"syntax", `x = (1`, luzerr.SyntaxErrorCode},
		{"semantic", `const c = 1; c = 2`, luzerr.SemanticErrorCode},
		{"invalid_instruction", `a = [1]; a += 2`, luzerr.InvalidInstructionCode},
		{"unimplemented", `fn f { }`, luzerr.UnimplementedFeature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, tt.name+".luz", tt.src)
			code, _, errOut := runFile(t, path, false)
			assert.Equal(t, int(tt.code), code)
			assert.Contains(t, errOut, CodeName(tt.code))
		})
	}
}

// TestRunFileMissing tests FileNotFound for a path that doesn't exist.
func TestRunFileMissing(t *testing.T) {
	code, _, errOut := runFile(t, filepath.Join(t.TempDir(), "gone.luz"), false)
	assert.Equal(t, int(luzerr.FileNotFound), code)
	assert.Contains(t, errOut, "FileNotFound")
}

// TestRunFileWrongExtension tests the .luz-only rule.
func TestRunFileWrongExtension(t *testing.T) {
	path := writeScript(t, "x.txt", `log 1`)
	code, _, _ := runFile(t, path, false)
	assert.Equal(t, int(luzerr.InvalidFilePath), code)
}

// TestResolveScriptPathDot tests that "." means main.luz in CWD.
func TestResolveScriptPathDot(t *testing.T) {
	path, err := ResolveScriptPath(".")
	require.Nil(t, err)
	assert.Equal(t, "main.luz", path)
}

// TestRunFileDebugTrace tests that --debug prints statement results to
// stderr and drops a decodable canonical CBOR trace next to the script.
func TestRunFileDebugTrace(t *testing.T) {
	path := writeScript(t, "dbg.luz", `x = "a\tb"; x`)
	code, _, errOut := runFile(t, path, true)
	require.Equal(t, 0, code)
	// Debug formatting re-escapes and quotes strings.
	assert.Contains(t, errOut, `=> "a\tb"`)

	data, err := os.ReadFile(path + ".trace")
	require.NoError(t, err)
	trace, err := DecodeTrace(data)
	require.NoError(t, err)
	assert.Equal(t, "dbg.luz", trace.Source)
	assert.NotEmpty(t, trace.Tokens)
	assert.Equal(t, []string{`"a\tb"`, `"a\tb"`}, trace.Results)
}

// TestRunFileSeededConfig tests that a .luzrc.yaml next to the script
// pins the maybe RNG.
func TestRunFileSeededConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configName), []byte("seed: 42\n"), 0o644))
	path := filepath.Join(dir, "m.luz")
	require.NoError(t, os.WriteFile(path, []byte(`log (1..=1000 as maybe)`), 0o644))

	_, first, _ := runFile(t, path, false)
	_, second, _ := runFile(t, path, false)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

// TestRunFileStdin tests get/getln wiring through the reader shim.
func TestRunFileStdin(t *testing.T) {
	path := writeScript(t, "in.luz", `x = get; y = getln; log "{x}|{y}"`)
	var out strings.Builder
	code := RunFile(path, RunOptions{
		NoColor: true,
		Stdout:  &out,
		Stderr:  &strings.Builder{},
		Stdin:   strings.NewReader("one two\nsecond line\n"),
	})
	require.Equal(t, 0, code)
	assert.Equal(t, "one|second line", out.String())
}
