package main

import (
	"context"
	"fmt"

	gwcli "github.com/wesnick/gcalcli/pkg/gwcli"
)

// connectionError marks failures to load config or authenticate.
type connectionError struct {
	err error
}

func (e *connectionError) Error() string { return e.err.Error() }

func (e *connectionError) Unwrap() error { return e.err }

// getConnection creates a Calendar connection with authentication
func getConnection(ctx context.Context, configDir string, out *outputWriter) (*gwcli.CmdG, error) {
	out.writeVerbose("Connecting with config directory %s", configDir)
	conn, err := gwcli.New(ctx, configDir, out.writer)
	if err != nil {
		return nil, &connectionError{fmt.Errorf("failed to create Calendar connection: %w", err)}
	}
	return conn, nil
}

// runConfigure runs the OAuth configuration flow
func runConfigure(ctx context.Context, configDir string, out *outputWriter) error {
	out.writeMessage("Configuring OAuth authentication...")
	out.writeMessagef("Config directory: %s\n", configDir)

	tokenPath, err := gwcli.Configure(ctx, configDir, out.writer)
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	out.writeSuccess("\nConfiguration complete!")
	out.writeMessagef("Token saved to: %s", tokenPath)
	return nil
}
