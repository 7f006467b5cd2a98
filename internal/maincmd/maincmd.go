package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/fixrun/internal/toolchain"
	"github.com/mna/mainer"
)

const (
	binName = "fixrun"

	// DefaultFixture is the fixture path used when none is provided.
	DefaultFixture = "compiler/tests.txt"
)

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>]
       %[1]s -h|--help
       %[1]s -v|--version

Diagnostic runner that drives a compiler toolchain over the test cases
of a fixture file and prints the intermediate results. Cases are
separated by lines starting with '='. The fixture is read from <path>,
from the --fixture flag, or from %[2]s by default.

Running '%[1]s run' with no option is the reference behavior: it
runs every case of %[2]s through the serpent program and prints
the results. The other options are diagnostic aids that change how
the stages are run, not the output protocol.

The <command> can be one of:
       run                       Run each case through the parse,
                                 compile and compile-to-assembly
                                 stages and print the results.
       cases                     Print each case of the fixture
                                 without running the toolchain.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --fixture PATH            Path of the fixture file.

Diagnostic flag options for the <run> command are:
       --toolchain NAME          Toolchain to run, either 'exec'
                                 (default) or 'echo'.
       --serpent BIN             Program invoked by the exec
                                 toolchain (default '%[3]s').
       --config FILE             YAML configuration of the exec
                                 toolchain. Explicit flags override
                                 its values.
       --compile-full            Compile the whole fixture for each
                                 case instead of the fixture text
                                 that follows the case.
       --memoize                 Run each stage only once for a given
                                 input.

Flags can also be set via environment variables prefixed with
%[4]s, e.g. %[4]sFIXTURE.
`, binName, DefaultFixture, toolchain.DefaultBin, envPrefix)

	envPrefix = strings.ToUpper(binName) + "_"
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Fixture     string `flag:"fixture" env:"FIXTURE"`
	Toolchain   string `flag:"toolchain" env:"TOOLCHAIN"`
	Serpent     string `flag:"serpent" env:"SERPENT"`
	Config      string `flag:"config" env:"CONFIG"`
	CompileFull bool   `flag:"compile-full" env:"COMPILE_FULL"`
	Memoize     bool   `flag:"memoize" env:"MEMOIZE"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) SetFlags(flags map[string]bool) {
	c.flags = flags
}

var runOnlyFlags = []string{"toolchain", "serpent", "config", "compile-full", "memoize"}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]

	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", c.args[0])
	}

	if len(c.args[1:]) > 1 {
		return fmt.Errorf("%s: at most one fixture path can be provided", cmdName)
	}

	if cmdName != "run" {
		for _, fl := range runOnlyFlags {
			if c.flags[fl] {
				return fmt.Errorf("%s: invalid flag '%s'", cmdName, fl)
			}
		}
	}

	switch c.Toolchain {
	case "", toolchain.NameExec:
	case toolchain.NameEcho:
		if c.flags["serpent"] || c.flags["config"] {
			return errors.New("flags 'serpent' and 'config' require the exec toolchain")
		}
	default:
		return fmt.Errorf("invalid toolchain: %s", c.Toolchain)
	}

	return nil
}

// fixturePath returns the path of the fixture to process, the positional
// argument having precedence over the flag.
func (c *Cmd) fixturePath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if c.Fixture != "" {
		return c.Fixture
	}
	return DefaultFixture
}

func printError(stdio mainer.Stdio, err error) error {
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
	}
	return err
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: envPrefix,
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		// each command takes care of printing its errors, just return with an error code
		return mainer.Failure
	}
	return mainer.Success
}

// valid commands are those that take a context, a mainer.Stdio and a slice
// of strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		// must take 4 parameters (including receiver) and return 1
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}

		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
