package toolchain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mna/fixrun/internal/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	x := toolchain.Exec{Bin: "some-serpent"}

	tc, err := toolchain.New("", x)
	require.NoError(t, err)
	if assert.IsType(t, &toolchain.Exec{}, tc) {
		assert.Equal(t, "some-serpent", tc.(*toolchain.Exec).Bin)
	}

	tc, err = toolchain.New(toolchain.NameExec, x)
	require.NoError(t, err)
	assert.IsType(t, &toolchain.Exec{}, tc)

	tc, err = toolchain.New(toolchain.NameEcho, x)
	require.NoError(t, err)
	assert.Equal(t, toolchain.Echo{}, tc)

	_, err = toolchain.New("gcc", x)
	assert.ErrorContains(t, err, "unknown toolchain: gcc")
}

func TestEcho(t *testing.T) {
	ctx := context.Background()
	var tc toolchain.Echo

	ast, err := tc.Parse(ctx, "a = 1\nb = 2")
	require.NoError(t, err)
	assert.Equal(t, `"a = 1\nb = 2"`, ast.String())

	code, err := tc.Compile(ctx, "a = 1\n\n  b = 2\n")
	require.NoError(t, err)
	assert.Equal(t, "a = 1 b = 2", code)

	items, err := tc.CompileToAssembly(ctx, ast)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "=", "1", "b", "=", "2"}, items)

	empty, err := tc.Parse(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, `""`, empty.String())
	items, err = tc.CompileToAssembly(ctx, empty)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = tc.CompileToAssembly(ctx, stringAST("x"))
	assert.ErrorContains(t, err, "echo: unsupported AST type")
}

type stringAST string

func (s stringAST) String() string { return string(s) }

// countingToolchain counts the invocations of each stage and fails any
// stage whose input is "fail".
type countingToolchain struct {
	parse, compile, asm int
}

func (c *countingToolchain) Parse(_ context.Context, src string) (toolchain.AST, error) {
	c.parse++
	if src == "fail" {
		return nil, errors.New("parse failed")
	}
	return stringAST(src), nil
}

func (c *countingToolchain) Compile(_ context.Context, src string) (string, error) {
	c.compile++
	if src == "fail" {
		return "", errors.New("compile failed")
	}
	return "code:" + src, nil
}

func (c *countingToolchain) CompileToAssembly(_ context.Context, ast toolchain.AST) ([]string, error) {
	c.asm++
	if ast.String() == "fail" {
		return nil, errors.New("assemble failed")
	}
	return []string{ast.String()}, nil
}

func TestMemo(t *testing.T) {
	ctx := context.Background()
	var ct countingToolchain
	m := toolchain.NewMemo(&ct)

	for i := 0; i < 3; i++ {
		ast, err := m.Parse(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "a", ast.String())

		code, err := m.Compile(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "code:a", code)

		items, err := m.CompileToAssembly(ctx, ast)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, items)
	}
	assert.Equal(t, 1, ct.parse)
	assert.Equal(t, 1, ct.compile)
	assert.Equal(t, 1, ct.asm)
	assert.Equal(t, 6, m.Hits)
	assert.Equal(t, 3, m.Len())

	_, err := m.Compile(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 2, ct.compile)
	assert.Equal(t, 4, m.Len())
}

func TestMemoErrorsNotCached(t *testing.T) {
	ctx := context.Background()
	var ct countingToolchain
	m := toolchain.NewMemo(&ct)

	for i := 0; i < 2; i++ {
		_, err := m.Parse(ctx, "fail")
		assert.ErrorContains(t, err, "parse failed")
		_, err = m.Compile(ctx, "fail")
		assert.ErrorContains(t, err, "compile failed")
		_, err = m.CompileToAssembly(ctx, stringAST("fail"))
		assert.ErrorContains(t, err, "assemble failed")
	}
	assert.Equal(t, 2, ct.parse)
	assert.Equal(t, 2, ct.compile)
	assert.Equal(t, 2, ct.asm)
	assert.Equal(t, 0, m.Hits)
	assert.Equal(t, 0, m.Len())
}

// printedAST always prints the same, its source is only known by its key.
type printedAST struct{ src string }

func (printedAST) String() string { return "(seq)" }
func (a printedAST) Key() string { return a.src }

type keyedToolchain struct {
	countingToolchain
}

func (k *keyedToolchain) CompileToAssembly(_ context.Context, ast toolchain.AST) ([]string, error) {
	k.asm++
	return []string{ast.(printedAST).src}, nil
}

func TestMemoKeyedAST(t *testing.T) {
	ctx := context.Background()
	var kt keyedToolchain
	m := toolchain.NewMemo(&kt)

	items, err := m.CompileToAssembly(ctx, printedAST{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)

	items, err = m.CompileToAssembly(ctx, printedAST{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, items)

	items, err = m.CompileToAssembly(ctx, printedAST{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, items)

	assert.Equal(t, 2, kt.asm)
	assert.Equal(t, 1, m.Hits)
}

func TestASTKey(t *testing.T) {
	assert.Equal(t, "x", toolchain.ASTKey(stringAST("x")))
	assert.Equal(t, "src", toolchain.ASTKey(printedAST{"src"}))
}
