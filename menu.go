package main

import (
	"context"
	"errors"
	"io"
	"strings"

	gwcli "github.com/wesnick/gcalcli/pkg/gwcli"
)

// connectFunc returns a freshly authenticated connection.
type connectFunc func(ctx context.Context) (*gwcli.CmdG, error)

type menuOp func(ctx context.Context, conn *gwcli.CmdG) error

// runMenu dispatches numbered choices until the user exits or the input
// ends. Every operation authenticates anew. A connection failure ends the
// loop with an error; operation failures are reported and the loop goes on.
func runMenu(ctx context.Context, connect connectFunc, p *prompter, out *outputWriter) error {
	ops := map[string]menuOp{
		"1": func(ctx context.Context, conn *gwcli.CmdG) error {
			return runEventsAdd(ctx, conn, p, out)
		},
		"2": func(ctx context.Context, conn *gwcli.CmdG) error {
			_, err := runEventsList(ctx, conn, out)
			return err
		},
		"3": func(ctx context.Context, conn *gwcli.CmdG) error {
			return runEventsUpdate(ctx, conn, p, out)
		},
		"4": func(ctx context.Context, conn *gwcli.CmdG) error {
			return runEventsDelete(ctx, conn, p, out)
		},
	}

	for {
		out.writeMessage("\nGoogle Calendar CLI")
		out.writeMessage("1. Add Event")
		out.writeMessage("2. View Upcoming Events")
		out.writeMessage("3. Update Event")
		out.writeMessage("4. Delete Event")
		out.writeMessage("5. Exit")

		in, err := p.ask("Choose an option: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		choice := strings.TrimSpace(in)
		if choice == "" {
			continue
		}
		if choice == "5" {
			return nil
		}
		op, ok := ops[choice]
		if !ok {
			out.writeFailure("Invalid option selected")
			continue
		}

		conn, err := connect(ctx)
		if err != nil {
			return err
		}
		if err := op(ctx, conn); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			out.writeFailure(err.Error())
		}
	}
}
