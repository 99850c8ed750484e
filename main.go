package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	gwcli "github.com/wesnick/gcalcli/pkg/gwcli"
)

var version = "dev"

type CLI struct {
	Config  string `help:"Config directory path" default:"~/.config/gcalcli" type:"path"`
	Verbose bool   `help:"Verbose logging"`
	NoColor bool   `help:"Disable colored output"`
	LogRPC  bool   `help:"Log every Calendar API call" name:"log-rpc"`

	Menu      struct{} `cmd:"" default:"1" help:"Interactive event menu"`
	Configure struct{} `cmd:"" help:"Configure OAuth authentication"`
	Version   struct{} `cmd:"" help:"Show version"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("gcalcli"),
		kong.Description("Interactive Google Calendar client"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	log.SetOutput(os.Stderr)
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	gwcli.Version = version
	gwcli.LogRPC = cli.LogRPC

	out := newOutputWriter(cli.NoColor, cli.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch kctx.Command() {
	case "menu":
		connect := func(ctx context.Context) (*gwcli.CmdG, error) {
			return getConnection(ctx, cli.Config, out)
		}
		if err := runMenu(ctx, connect, newPrompter(os.Stdin, os.Stdout), out); err != nil {
			out.writeError(err)
			var connErr *connectionError
			if errors.As(err, &connErr) {
				os.Exit(3)
			}
			os.Exit(2)
		}

	case "configure":
		if err := runConfigure(ctx, cli.Config, out); err != nil {
			out.writeError(err)
			os.Exit(3)
		}

	case "version":
		fmt.Printf("gcalcli %s\n", version)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", kctx.Command())
		os.Exit(1)
	}
}
