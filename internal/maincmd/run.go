package maincmd

import (
	"context"

	"github.com/mna/fixrun/internal/config"
	"github.com/mna/fixrun/internal/driver"
	"github.com/mna/fixrun/internal/toolchain"
	"github.com/mna/mainer"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	tc, err := c.buildToolchain()
	if err != nil {
		return printError(stdio, err)
	}
	if c.Memoize {
		tc = toolchain.NewMemo(tc)
	}

	scope := driver.ScopeRemaining
	if c.CompileFull {
		scope = driver.ScopeFull
	}
	return RunFixture(ctx, stdio, tc, scope, c.fixturePath(args))
}

func (c *Cmd) buildToolchain() (toolchain.Toolchain, error) {
	var x toolchain.Exec
	if c.Config != "" {
		cfg, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}
		x = cfg.Exec()
	}
	if c.Serpent != "" {
		x.Bin = c.Serpent
	}
	return toolchain.New(c.Toolchain, x)
}

// RunFixture runs the fixture at path through the toolchain, printing the
// results to stdio.Stdout. The first error aborts the run and is printed to
// stdio.Stderr.
func RunFixture(ctx context.Context, stdio mainer.Stdio, tc toolchain.Toolchain, scope driver.Scope, path string) error {
	d := driver.Driver{
		Toolchain: tc,
		Stdout:    stdio.Stdout,
		Scope:     scope,
	}
	return printError(stdio, d.Run(ctx, path))
}
