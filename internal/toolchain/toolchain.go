// Package toolchain defines the contract of the compiler toolchain driven by
// the fixture runner, along with the available implementations.
//
// The parser, compiler and assembler are not implemented here, they are
// consumed through the Toolchain interface.
package toolchain

import (
	"context"
	"fmt"
)

// AST is the opaque result of the parse stage. It is only ever printed or
// passed back to the toolchain that produced it.
type AST interface {
	String() string
}

// Keyer is implemented by an AST whose printed form does not identify it.
// Key returns the value that determines the result of CompileToAssembly
// for that AST.
type Keyer interface {
	Key() string
}

// ASTKey returns the identity of ast: its Key if it implements Keyer, its
// printed form otherwise.
func ASTKey(ast AST) string {
	if k, ok := ast.(Keyer); ok {
		return k.Key()
	}
	return ast.String()
}

// Toolchain is the set of stages a fixture case goes through.
type Toolchain interface {
	// Parse parses the source text and returns its AST.
	Parse(ctx context.Context, src string) (AST, error)

	// Compile compiles the source text to its intermediate code.
	Compile(ctx context.Context, src string) (string, error)

	// CompileToAssembly compiles an AST returned by Parse to the sequence of
	// assembly items.
	CompileToAssembly(ctx context.Context, ast AST) ([]string, error)
}

// List of toolchain names accepted by New.
const (
	NameExec = "exec"
	NameEcho = "echo"
)

// New returns the toolchain identified by name. The exec toolchain is
// configured with exec, which is ignored for the others.
func New(name string, exec Exec) (Toolchain, error) {
	switch name {
	case NameExec, "":
		return &exec, nil
	case NameEcho:
		return Echo{}, nil
	default:
		return nil, fmt.Errorf("unknown toolchain: %s", name)
	}
}

func foreignAST(tc string, ast AST) error {
	return fmt.Errorf("%s: unsupported AST type %T", tc, ast)
}
