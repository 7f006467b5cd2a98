package toolchain

import (
	"context"
	"strconv"
	"strings"
)

// Echo is a deterministic toolchain that reflects its input. It requires no
// external program and is mostly useful to inspect how a fixture is
// segmented and fed to the stages.
//
// Its AST prints as the quoted source, Compile joins the whitespace-separated
// fields of the source with a single space and CompileToAssembly returns
// those fields.
type Echo struct{}

var _ Toolchain = Echo{}

type echoAST struct {
	src string
}

func (a echoAST) String() string { return strconv.Quote(a.src) }

func (Echo) Parse(_ context.Context, src string) (AST, error) {
	return echoAST{src: src}, nil
}

func (Echo) Compile(_ context.Context, src string) (string, error) {
	return strings.Join(strings.Fields(src), " "), nil
}

func (Echo) CompileToAssembly(_ context.Context, ast AST) ([]string, error) {
	ea, ok := ast.(echoAST)
	if !ok {
		return nil, foreignAST("echo", ast)
	}
	return strings.Fields(ea.src), nil
}
