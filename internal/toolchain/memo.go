package toolchain

import (
	"context"

	"github.com/dolthub/swiss"
)

// Memo wraps a toolchain and caches the successful result of each stage by
// its input, so that a stage runs only once for a given input. Errors are
// not cached. The AST passed to CompileToAssembly is identified by ASTKey.
// Memo must only wrap deterministic toolchains.
//
// A Memo is not safe for concurrent use.
type Memo struct {
	tc       Toolchain
	parsed   *swiss.Map[string, AST]
	compiled *swiss.Map[string, string]
	asm      *swiss.Map[string, []string]

	// Hits counts the stage invocations served from the cache.
	Hits int
}

var _ Toolchain = (*Memo)(nil)

// NewMemo returns a memoizing toolchain that wraps tc.
func NewMemo(tc Toolchain) *Memo {
	return &Memo{
		tc:       tc,
		parsed:   swiss.NewMap[string, AST](8),
		compiled: swiss.NewMap[string, string](8),
		asm:      swiss.NewMap[string, []string](8),
	}
}

func (m *Memo) Parse(ctx context.Context, src string) (AST, error) {
	if ast, ok := m.parsed.Get(src); ok {
		m.Hits++
		return ast, nil
	}
	ast, err := m.tc.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	m.parsed.Put(src, ast)
	return ast, nil
}

func (m *Memo) Compile(ctx context.Context, src string) (string, error) {
	if code, ok := m.compiled.Get(src); ok {
		m.Hits++
		return code, nil
	}
	code, err := m.tc.Compile(ctx, src)
	if err != nil {
		return "", err
	}
	m.compiled.Put(src, code)
	return code, nil
}

func (m *Memo) CompileToAssembly(ctx context.Context, ast AST) ([]string, error) {
	key := ASTKey(ast)
	if items, ok := m.asm.Get(key); ok {
		m.Hits++
		return items, nil
	}
	items, err := m.tc.CompileToAssembly(ctx, ast)
	if err != nil {
		return nil, err
	}
	m.asm.Put(key, items)
	return items, nil
}

// Len returns the number of cached results, all stages combined.
func (m *Memo) Len() int {
	return m.parsed.Count() + m.compiled.Count() + m.asm.Count()
}
