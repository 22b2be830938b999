// Command conch is the CLI entry point for the front-end: a one-shot file
// compiler and an interactive REPL, both built on internal/driver.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/conchlang/conch/internal/driver"
)

var cli struct {
	GroupExpressions bool   `help:"Wrap prefix/infix expressions in parentheses when printing the reconstructed AST." name:"group-expressions"`
	LogLevel         string `help:"Operator log level (debug, info, warn, error)." default:"info" enum:"debug,info,warn,error"`

	Run struct {
		File string `arg:"" help:"Source file to compile." type:"path"`
	} `cmd:"" help:"Compile a single source file and print its reconstructed AST."`

	Repl struct{} `cmd:"" help:"Start the interactive REPL."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("conch"),
		kong.Description("Front-end (lexer, parser, semantic analyzer) for the conch language."),
	)

	log := newLogger(cli.LogLevel)
	defer log.Sync()

	streams := driver.Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
	d := driver.New(streams, log, cli.GroupExpressions)

	switch ctx.Command() {
	case "run <file>":
		source, err := os.ReadFile(cli.Run.File)
		if err != nil {
			log.Error("could not read source file", zap.String("path", cli.Run.File), zap.Error(err))
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !d.RunFile(string(source)) {
			os.Exit(1)
		}
	case "repl":
		os.Exit(d.RunREPL())
	default:
		fmt.Fprintln(os.Stderr, "unknown command")
		os.Exit(1)
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	var lvl zapcore.Level
	if err := lvl.Set(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
