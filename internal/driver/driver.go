// Package driver implements the REPL/pipeline orchestrator that wires the
// lexer, parser, and semantic analyzer into one compile pass and drives the
// interactive loop around it. It is a thin external collaborator, not part
// of the front-end core: it owns no parsing or analysis logic of its own.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/conchlang/conch/internal/ast"
	"github.com/conchlang/conch/internal/diag"
	"github.com/conchlang/conch/internal/lexer"
	"github.com/conchlang/conch/internal/parser"
	"github.com/conchlang/conch/internal/sema"
)

// Streams is the three-stream handle the core is given: in for input, out
// for reconstructed source, err for diagnostics. The driver neither opens
// nor closes these; the caller owns their lifetime.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Result is one compile pass's outcome.
type Result struct {
	File  *ast.File
	Diags []diag.Diagnostic
}

// Compile runs source through the lexer, parser, and semantic analyzer in
// sequence, stopping early whenever a stage reports diagnostics — a later
// stage is never handed a malformed tree.
func Compile(source string) Result {
	lx := lexer.New()
	tokens, diags := lx.Lex(source)
	if len(diags) > 0 {
		return Result{Diags: diags}
	}

	p := parser.New(tokens)
	file, diags := p.ParseFile()
	if len(diags) > 0 {
		return Result{Diags: diags}
	}

	checker := sema.NewChecker()
	diags = checker.Check(file)
	if len(diags) > 0 {
		return Result{Diags: diags}
	}

	return Result{File: file}
}

// Driver holds the streams and logger one REPL or single-file run is threaded
// through.
type Driver struct {
	streams          Streams
	log              *zap.Logger
	groupExpressions bool
}

// New builds a driver over streams, logging operational events to log. log
// must not be nil; pass zap.NewNop() to silence it.
func New(streams Streams, log *zap.Logger, groupExpressions bool) *Driver {
	return &Driver{streams: streams, log: log, groupExpressions: groupExpressions}
}

// RunFile compiles source once and writes either
// the reconstructed AST to out or the diagnostic list to err. It returns
// true if the compile succeeded.
func (d *Driver) RunFile(source string) bool {
	d.log.Debug("compiling file", zap.Int("bytes", len(source)))
	result := Compile(source)
	if len(result.Diags) > 0 {
		d.emitDiagnostics(result.Diags)
		return false
	}
	fmt.Fprintln(d.streams.Out, ast.Reconstruct(result.File, d.groupExpressions))
	return true
}

const replWelcome = "conch REPL — type 'exit' to quit"

// RunREPL implements the REPL loop: welcome banner, prompt, read a
// newline-terminated line (continuation lines are concatenated into one
// logical line before compiling), compile, print either the reconstructed
// AST or the diagnostic list, and loop until the bare token `exit`.
func (d *Driver) RunREPL() int {
	fmt.Fprintln(d.streams.Out, replWelcome)
	d.log.Info("repl started")
	scanner := bufio.NewScanner(d.streams.In)
	for {
		fmt.Fprint(d.streams.Out, "> ")
		line, ok := d.readLogicalLine(scanner)
		if !ok {
			d.log.Info("repl exiting on input EOF")
			return 0
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "exit" {
			d.log.Info("repl exiting on exit command")
			return 0
		}
		if trimmed == "" {
			continue
		}
		result := Compile(line)
		if len(result.Diags) > 0 {
			d.emitDiagnostics(result.Diags)
			continue
		}
		fmt.Fprintln(d.streams.Out, ast.Reconstruct(result.File, d.groupExpressions))
	}
}

// readLogicalLine reads one newline-terminated line, concatenating
// continuation reads (a trailing backslash) into a single logical line.
func (d *Driver) readLogicalLine(scanner *bufio.Scanner) (string, bool) {
	var sb strings.Builder
	for {
		if !scanner.Scan() {
			if sb.Len() == 0 {
				return "", false
			}
			return sb.String(), true
		}
		line := scanner.Text()
		if strings.HasSuffix(line, "\\") {
			sb.WriteString(strings.TrimSuffix(line, "\\"))
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(line)
		return sb.String(), true
	}
}

func (d *Driver) emitDiagnostics(diags []diag.Diagnostic) {
	for _, dg := range diags {
		fmt.Fprintln(d.streams.Err, dg.Error())
	}
}
