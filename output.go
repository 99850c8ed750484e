package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// outputWriter handles user-facing output
type outputWriter struct {
	noColor bool
	verbose bool
	writer  io.Writer
	loc     *time.Location

	success *color.Color
	failure *color.Color
}

func newOutputWriter(noColor, verbose bool) *outputWriter {
	return newOutputWriterTo(os.Stdout, noColor, verbose)
}

func newOutputWriterTo(w io.Writer, noColor, verbose bool) *outputWriter {
	o := &outputWriter{
		noColor: noColor,
		verbose: verbose,
		writer:  w,
		loc:     time.Local,
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
	// Terminal detection only covers os.Stdout.
	if noColor || w != os.Stdout {
		o.success.DisableColor()
		o.failure.DisableColor()
	}
	return o
}

// writeMessage outputs a simple message
func (o *outputWriter) writeMessage(msg string) {
	fmt.Fprintln(o.writer, msg)
}

// writeMessagef outputs a formatted message
func (o *outputWriter) writeMessagef(format string, args ...interface{}) {
	fmt.Fprintf(o.writer, format+"\n", args...)
}

// writeSuccess outputs a confirmation
func (o *outputWriter) writeSuccess(msg string) {
	o.success.Fprintln(o.writer, msg)
}

// writeFailure outputs a message for an aborted or failed operation
func (o *outputWriter) writeFailure(msg string) {
	o.failure.Fprintln(o.writer, msg)
}

// writeError outputs an error message to stderr
func (o *outputWriter) writeError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// writeVerbose logs a progress message at debug level
func (o *outputWriter) writeVerbose(format string, args ...interface{}) {
	if o.verbose {
		log.Debugf(format, args...)
	}
}
