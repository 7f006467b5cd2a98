// Package driver implements the fixture runner: it feeds each case of a
// fixture through the toolchain stages and prints the intermediate results
// for manual inspection. No expected output is compared.
package driver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mna/fixrun/internal/fixture"
	"github.com/mna/fixrun/internal/toolchain"
)

// Banner is printed before each case.
const Banner = "================="

// Scope selects the source text given to the compile stage of a case.
type Scope int

// List of supported compile scopes.
const (
	// ScopeRemaining compiles the fixture text from the cursor position after
	// the case (and its delimiter) to the end of the fixture.
	ScopeRemaining Scope = iota

	// ScopeFull compiles the whole fixture text for every case.
	ScopeFull
)

func (s Scope) String() string {
	switch s {
	case ScopeRemaining:
		return "remaining"
	case ScopeFull:
		return "full"
	default:
		return fmt.Sprintf("Scope(%d)", int(s))
	}
}

// Driver runs the cases of a fixture through a toolchain.
type Driver struct {
	Toolchain toolchain.Toolchain
	Stdout    io.Writer
	Scope     Scope
}

// Run loads the fixture at path and runs it.
func (d *Driver) Run(ctx context.Context, path string) error {
	fx, err := fixture.Load(path)
	if err != nil {
		return err
	}
	return d.RunFixture(ctx, fx)
}

// RunFixture runs every case of fx in order, stopping at the first error.
// The output of a case is written as it is produced, so on failure the
// output of the failing case is partial.
func (d *Driver) RunFixture(ctx context.Context, fx *fixture.Fixture) error {
	p := printer{w: d.Stdout}
	for s := fx.Scanner(); s.Scan(); {
		c := s.Case()

		src := s.Remaining()
		if d.Scope == ScopeFull {
			src = fx.Text()
		}
		if err := d.runCase(ctx, &p, c, src); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) runCase(ctx context.Context, p *printer, c fixture.Case, compileSrc string) error {
	tc := d.Toolchain

	p.println(Banner)
	p.println(c.Text)
	if p.err != nil {
		return p.err
	}

	ast, err := tc.Parse(ctx, c.Text)
	if err != nil {
		return &StageError{Stage: StageParse, Case: c.Num, Err: err}
	}
	p.println("AST:", ast)
	p.println()

	code, err := tc.Compile(ctx, compileSrc)
	if err != nil {
		return &StageError{Stage: StageCompile, Case: c.Num, Err: err}
	}
	p.println("AEVM:", code)
	p.println()
	if p.err != nil {
		return p.err
	}

	codeAST, err := tc.Parse(ctx, code)
	if err != nil {
		return &StageError{Stage: StageReparse, Case: c.Num, Err: err}
	}
	items, err := tc.CompileToAssembly(ctx, codeAST)
	if err != nil {
		return &StageError{Stage: StageAssemble, Case: c.Num, Err: err}
	}
	p.println("Output:", strings.Join(items, " "))
	return p.err
}

// printer writes lines to w, stopping at the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, args...)
}
