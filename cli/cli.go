package cli

import (
	"context"
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/equatic/cli/cmd"
	"github.com/ardnew/equatic/cli/cmd/repl"
	"github.com/ardnew/equatic/equation"
	"github.com/ardnew/equatic/pkg"
)

// CLI is the top-level command-line interface for equatic.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source []string `help:"Read newline-separated expressions from file(s) or '-' for stdin" name:"source" short:"i" type:"existingfile"`
	Define []string `help:"Register a derived function NAME=EXPR (repeatable)"               name:"define" short:"D" placeholder:"NAME=EXPR"`

	Init    cmd.Init    `cmd:"" help:"Initialize configuration file"`
	Funcs   cmd.Funcs   `cmd:"" help:"List registered functions"`
	Repl    repl.Repl   `cmd:"" help:"Start an interactive session"`
	Version cmd.Version `cmd:"" help:"Print version"`

	Eval cmd.Eval `cmd:"" default:"withargs" help:"Evaluate an expression"`
}

// Run executes the equatic CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.ConfigIdentifier: configPath(baseConfig + yamlExt),
		cmd.CacheIdentifier:  cacheDir(),
		"samples":            strconv.Itoa(equation.DefaultSamples),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+jsonExt)),
		kong.Configuration(resolve, configPath(baseConfig+yamlExt)),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	reg := equation.Default()

	err = cmd.Define(reg, cli.Define)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)
	ctx = cmd.WithRegistry(ctx, reg)

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
