package driver_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/conchlang/conch/internal/driver"
)

func TestCompileSucceedsOnCleanSource(t *testing.T) {
	result := driver.Compile("var x := 1;")
	assert.Empty(t, result.Diags)
	require.NotNil(t, result.File)
}

func TestCompileStopsAtLexerStage(t *testing.T) {
	// a non-ASCII byte outside any string/char literal is illegal at the
	// lexer stage; the parser and checker must never run on it.
	result := driver.Compile("§;")
	require.NotEmpty(t, result.Diags)
	assert.Nil(t, result.File)
}

func TestCompileStopsAtParserStage(t *testing.T) {
	result := driver.Compile("1; )")
	require.NotEmpty(t, result.Diags)
	assert.Nil(t, result.File)
}

func TestCompileStopsAtSemaStage(t *testing.T) {
	result := driver.Compile("undefinedName;")
	require.NotEmpty(t, result.Diags)
	assert.Nil(t, result.File)
}

func TestRunFileWritesReconstructedSourceOnSuccess(t *testing.T) {
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{Out: &out, Err: &errBuf}, zap.NewNop(), false)

	ok := d.RunFile("var x := 1;")
	assert.True(t, ok)
	assert.Empty(t, errBuf.String())
	assert.Contains(t, out.String(), "x := 1")
}

func TestRunFileWritesDiagnosticsOnFailure(t *testing.T) {
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{Out: &out, Err: &errBuf}, zap.NewNop(), false)

	ok := d.RunFile("undefinedName;")
	assert.False(t, ok)
	assert.Empty(t, out.String())
	assert.NotEmpty(t, errBuf.String())
}

func TestRunREPLEchoesWelcomeAndExitsOnExitCommand(t *testing.T) {
	in := strings.NewReader("exit\n")
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{In: in, Out: &out, Err: &errBuf}, zap.NewNop(), false)

	code := d.RunREPL()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "conch REPL")
}

func TestRunREPLPrintsReconstructionForEachLine(t *testing.T) {
	in := strings.NewReader("var x := 1;\nexit\n")
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{In: in, Out: &out, Err: &errBuf}, zap.NewNop(), false)

	code := d.RunREPL()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "x := 1")
	assert.Empty(t, errBuf.String())
}

func TestRunREPLJoinsBackslashContinuationLines(t *testing.T) {
	in := strings.NewReader("var x := \\\n1;\nexit\n")
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{In: in, Out: &out, Err: &errBuf}, zap.NewNop(), false)

	code := d.RunREPL()
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "x := 1")
}

func TestRunREPLExitsCleanlyOnEOFWithoutExitCommand(t *testing.T) {
	in := strings.NewReader("")
	var out, errBuf bytes.Buffer
	d := driver.New(driver.Streams{In: in, Out: &out, Err: &errBuf}, zap.NewNop(), false)

	code := d.RunREPL()
	assert.Equal(t, 0, code)
}
