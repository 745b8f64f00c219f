// Copyright (c) 2023-2024 D. Bohdan
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
	tsize "github.com/kopoli/go-terminal-size"
	"github.com/mitchellh/go-wordwrap"
)

const (
	defaultWrapWidth = 80
	maxGeneratorInt  = 1 << 61
	maxVerboseLevel  = 2
	version          = "0.3.0"
)

const description = "Count greedily matched pairs between two integer sequences. " +
	"Reads \"n m k\", then n integers of A and m integers of B, from standard input. " +
	"Both sequences are sorted and swept with two cursors. " +
	"By default a pair matches when |a - b| < k; --inclusive matches when |a - b| <= k."

type cli struct {
	Version kong.VersionFlag `short:"V" help:"print version number and exit"`
	Verbose int              `short:"v" type:"counter" help:"increase verbosity"`

	Count countCmd `cmd:"" default:"withargs" help:"count matched pairs (default)"`
	Diff  diffCmd  `cmd:"" help:"find random inputs where the strict and inclusive predicates disagree"`
}

type countCmd struct {
	Inclusive bool   `short:"i" help:"match when |a - b| <= k instead of |a - b| < k"`
	Input     string `short:"f" type:"existingfile" help:"read input from a file instead of standard input"`
	Predicate string `short:"p" help:"custom match predicate (Starlark expression over a, b and k)"`
}

type diffCmd struct {
	Boundary float64 `default:"0.5" help:"probability of placing an element of B exactly k away from A"`
	Jobs     int     `short:"j" default:"0" help:"concurrent trials (0 for one per CPU)"`
	MaxK     int64   `default:"10" help:"maximum threshold"`
	MaxLen   int     `default:"8" help:"maximum sequence length"`
	MaxValue int64   `default:"20" help:"maximum absolute element value"`
	Out      string  `short:"o" type:"path" help:"directory to write divergent cases to"`
	Seed     int64   `short:"s" default:"1" help:"random seed"`
	Trials   int     `short:"n" default:"1000" help:"number of random problems"`
}

type countConfig struct {
	Input     string
	Inclusive bool
	Predicate string
	Verbose   int
}

type appContext struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Logger  *log.Logger
	Verbose int
}

type elapsedTimeWriter struct {
	out       io.Writer
	startTime time.Time
}

type exitRequestError struct {
	Code int
}

func (w *elapsedTimeWriter) Write(bytes []byte) (int, error) {
	elapsed := time.Since(w.startTime)

	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	seconds := int(elapsed.Seconds()) % 60
	deciseconds := elapsed.Milliseconds() % 1000 / 100

	return fmt.Fprintf(w.out, "paircount [%02d:%02d:%02d.%01d]: %s", hours, minutes, seconds, deciseconds, string(bytes))
}

func (e *exitRequestError) Error() string {
	return fmt.Sprintf("exit requested with code %d", e.Code)
}

func (c *countCmd) Validate() error {
	if c.Inclusive && c.Predicate != "" {
		return errors.New("--inclusive and --predicate can't be used together")
	}

	return nil
}

func (c *countCmd) Run(app *appContext) error {
	config := countConfig{
		Input:     c.Input,
		Inclusive: c.Inclusive,
		Predicate: c.Predicate,
		Verbose:   app.Verbose,
	}

	if config.Verbose >= 2 {
		app.Logger.Printf("%s\n", repr.String(config, repr.Indent("    ")))
	}

	return count(config, app)
}

func count(config countConfig, app *appContext) error {
	input := app.Stdin
	if config.Input != "" {
		f, err := os.Open(config.Input)
		if err != nil {
			return err
		}
		defer f.Close()

		input = f
	}

	p, err := readProblem(input)
	if errors.Is(err, errMalformedHeader) {
		if config.Verbose >= 1 {
			app.Logger.Printf("%v; no output", err)
		}

		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if config.Verbose >= 1 {
		app.Logger.Printf("read n=%d m=%d k=%d", len(p.A), len(p.B), p.K)

		if p.Defaulted > 0 {
			app.Logger.Printf("%d missing or invalid elements read as 0", p.Defaulted)
		}
	}

	var match predicate
	name := "strict"

	switch {
	case config.Predicate != "":
		name = "custom"
		if match, err = compilePredicate(config.Predicate, p.K); err != nil {
			return err
		}
	case config.Inclusive:
		name = "inclusive"
		match = inclusiveMatch(p.K)
	default:
		match = strictMatch(p.K)
	}

	slices.Sort(p.A)
	slices.Sort(p.B)

	n, err := countPairs(p.A, p.B, match)
	if err != nil {
		return fmt.Errorf("predicate evaluation failed: %w", err)
	}

	if config.Verbose >= 1 {
		app.Logger.Printf("matched %d pairs with %s predicate", n, name)
	}

	_, err = fmt.Fprintln(app.Stdout, n)
	return err
}

func (d *diffCmd) Validate() error {
	if d.Trials < 0 {
		return fmt.Errorf("negative number of trials: %d", d.Trials)
	}

	if d.MaxLen < 0 || d.MaxLen > maxSequenceLen {
		return fmt.Errorf("maximum length out of range: %d", d.MaxLen)
	}

	if d.MaxValue < 0 || d.MaxValue > maxGeneratorInt {
		return fmt.Errorf("maximum value out of range: %d", d.MaxValue)
	}

	if d.MaxK < 0 || d.MaxK > maxGeneratorInt {
		return fmt.Errorf("maximum threshold out of range: %d", d.MaxK)
	}

	if d.Boundary < 0 || d.Boundary > 1 {
		return fmt.Errorf("boundary probability must be between 0 and 1, got %g", d.Boundary)
	}

	return nil
}

func (d *diffCmd) Run(app *appContext) error {
	jobs := d.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	config := diffConfig{
		Generator: generator{
			MaxLen:   d.MaxLen,
			MaxValue: d.MaxValue,
			MaxK:     d.MaxK,
			Boundary: d.Boundary,
		},
		Jobs:    jobs,
		OutDir:  d.Out,
		Seed:    d.Seed,
		Trials:  d.Trials,
		Verbose: app.Verbose,
	}

	if config.Verbose >= 2 {
		app.Logger.Printf("%s\n", repr.String(config, repr.Indent("    ")))
	}

	report, err := runDiff(context.Background(), config, app.Logger)
	if err != nil {
		return fmt.Errorf("differential testing failed: %w", err)
	}

	_, err = fmt.Fprintf(app.Stdout, "%d of %d trials diverged (%d unique)\n", report.Divergent, report.Trials, len(report.Cases))
	return err
}

func wrapForTerminal(s string) string {
	width := defaultWrapWidth
	if size, err := tsize.GetSize(); err == nil && size.Width > 0 {
		width = size.Width
	}

	return wordwrap.WrapString(s, uint(width))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (exitCode int) {
	logWriter := &elapsedTimeWriter{
		out:       stderr,
		startTime: time.Now(),
	}
	logger := log.New(logWriter, "", 0)

	log.SetOutput(logWriter)
	log.SetFlags(0)

	defer func() {
		if r := recover(); r != nil {
			exitErr, ok := r.(*exitRequestError)
			if !ok {
				panic(r)
			}

			exitCode = exitErr.Code
		}
	}()

	var cliConfig cli
	parser, err := kong.New(&cliConfig,
		kong.Name("paircount"),
		kong.Description(wrapForTerminal(description)),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			panic(&exitRequestError{Code: code})
		}),
	)
	if err != nil {
		logger.Printf("%v", err)
		return 1
	}

	kongCtx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if cliConfig.Verbose > maxVerboseLevel {
		kongCtx.Fatalf("up to %d verbose flags is allowed", maxVerboseLevel)
	}

	app := &appContext{
		Stdin:   stdin,
		Stdout:  stdout,
		Logger:  logger,
		Verbose: cliConfig.Verbose,
	}

	if err := kongCtx.Run(app); err != nil {
		logger.Printf("%v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
