package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/fixrun/internal/driver"
	"github.com/mna/fixrun/internal/fixture"
	"github.com/mna/mainer"
)

func (c *Cmd) Cases(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return ListCases(ctx, stdio, c.fixturePath(args))
}

// ListCases prints the banner and text of each case of the fixture at path,
// in order.
func ListCases(ctx context.Context, stdio mainer.Stdio, path string) error {
	fx, err := fixture.Load(path)
	if err != nil {
		return printError(stdio, err)
	}

	for s := fx.Scanner(); s.Scan(); {
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}
		if _, err := fmt.Fprintf(stdio.Stdout, "%s\n%s\n", driver.Banner, s.Case().Text); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}
