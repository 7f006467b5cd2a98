package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Default values of the Exec toolchain.
const (
	DefaultBin         = "serpent"
	DefaultParseCmd    = "parse"
	DefaultCompileCmd  = "compile"
	DefaultAssembleCmd = "compile_to_assembly"
)

// Commands holds the sub-command of the external program that implements
// each stage.
type Commands struct {
	Parse    string
	Compile  string
	Assemble string
}

// Exec is a toolchain that runs an external program for each stage,
// invoked as "<Bin> <command> <file>". The source of the stage is written to
// a temporary file whose path is the last argument, so the size of the
// source is not limited by the maximum length of a command-line argument.
// The file is removed once the program exits. The trimmed standard output
// of the program is the result of the stage, and the assembly items are the
// whitespace-separated fields of that output.
//
// The AST returned by Parse keeps the source it was parsed from, which is
// what CompileToAssembly passes to the program, as it cannot receive an AST
// directly.
type Exec struct {
	Bin      string   // defaults to DefaultBin
	Dir      string   // working directory of the program, current if empty
	Env      []string // additional environment variables, in key=value form
	Commands Commands // each command defaults to its corresponding DefaultXxxCmd
}

var _ Toolchain = (*Exec)(nil)

// ExecError is the error returned when the external program fails.
type ExecError struct {
	Cmd    string // stage command
	Stderr string // trimmed standard error of the program
	Err    error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Cmd, e.Err)
	if e.Stderr != "" {
		msg += "\n" + e.Stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

type execAST struct {
	src     string
	printed string
}

func (a *execAST) String() string { return a.printed }

// Key identifies the AST by its source, which is what CompileToAssembly
// compiles.
func (a *execAST) Key() string { return a.src }

func (x *Exec) Parse(ctx context.Context, src string) (AST, error) {
	out, err := x.run(ctx, orDefault(x.Commands.Parse, DefaultParseCmd), src)
	if err != nil {
		return nil, err
	}
	return &execAST{src: src, printed: out}, nil
}

func (x *Exec) Compile(ctx context.Context, src string) (string, error) {
	return x.run(ctx, orDefault(x.Commands.Compile, DefaultCompileCmd), src)
}

func (x *Exec) CompileToAssembly(ctx context.Context, ast AST) ([]string, error) {
	ea, ok := ast.(*execAST)
	if !ok {
		return nil, foreignAST("exec", ast)
	}
	out, err := x.run(ctx, orDefault(x.Commands.Assemble, DefaultAssembleCmd), ea.src)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}

func (x *Exec) run(ctx context.Context, cmdName, src string) (string, error) {
	var stdout, stderr bytes.Buffer

	srcFile, err := writeSource(src)
	if err != nil {
		return "", &ExecError{Cmd: cmdName, Err: err}
	}
	defer os.Remove(srcFile)

	cmd := exec.CommandContext(ctx, orDefault(x.Bin, DefaultBin), cmdName, srcFile)
	cmd.Dir = x.Dir
	if len(x.Env) > 0 {
		cmd.Env = append(cmd.Environ(), x.Env...)
	}
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		return "", &ExecError{
			Cmd:    cmdName,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return strings.TrimRight(stdout.String(), " \t\r\n"), nil
}

func writeSource(src string) (string, error) {
	f, err := os.CreateTemp("", "fixrun-*.se")
	if err != nil {
		return "", fmt.Errorf("write source: %w", err)
	}
	if _, err := f.WriteString(src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write source: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write source: %w", err)
	}
	return f.Name(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
