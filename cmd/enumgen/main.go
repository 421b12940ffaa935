package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/smartenum/cmd/enumgen/internal/check"
	"github.com/broady/smartenum/cmd/enumgen/internal/gen"
)

type CLI struct {
	Verbose bool `help:"Log progress in addition to warnings." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     gen.Cmd    `cmd:"" help:"Generate Go enum code from a definition file."`
	Check   check.Cmd  `cmd:"" help:"Verify generated code is up to date without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("enumgen"),
		kong.Description("Code generator for smartenum enumerations."),
		kong.UsageOnError(),
	)

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
