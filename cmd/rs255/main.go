// Command rs255 encodes and decodes RS(255, 255-n) codewords and runs the
// Monte-Carlo channel simulation.
//
// Usage:
//
//	rs255 encode --parity N [--pad] <hex message>
//	rs255 decode --parity N [--erasures i,j,...] <hex codeword>
//	rs255 sim [--config FILE] [--trials N] [--out FILE] ...
//	rs255 version
//
// Global flags:
//
//	--log-level   debug, info, warn or error (default: info)
//	--log-format  text or json (default: text)
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/rs255/rs255/log"
	"github.com/rs255/rs255/metrics"
)

// Build-time version info, overridable with ldflags:
//
//	go build -ldflags "-X main.version=v0.2.0 -X main.commit=abc1234"
var (
	version = "v0.1.0-dev"
	commit  = "unknown"
)

// CLI is the kong command tree.
type CLI struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format."`

	Encode  encodeCmd  `cmd:"" help:"Encode a hex message into a codeword."`
	Decode  decodeCmd  `cmd:"" help:"Correct a hex codeword."`
	Sim     simCmd     `cmd:"" help:"Run the Monte-Carlo channel simulation."`
	Version versionCmd `cmd:"" help:"Print the version and exit."`
}

// globals is bound into every command's Run method.
type globals struct {
	ctx      context.Context
	stdout   io.Writer
	stderr   io.Writer
	log      *log.Logger
	registry *metrics.Registry
}

// exitCode carries a kong-requested exit out of Parse.
type exitCode int

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the actual entry point, returning an exit code: 0 on success, 1
// when a command fails and 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) (code int) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("rs255"),
		kong.Description("Reed-Solomon RS(255, 255-n) codec over GF(2^8)."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
	)
	if err != nil {
		fmt.Fprintf(stderr, "rs255: %v\n", err)
		return 2
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()
	kctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "rs255: %v\n", err)
		return 2
	}

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "rs255: %v\n", err)
		return 2
	}
	format, err := log.ParseFormat(cli.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "rs255: %v\n", err)
		return 2
	}
	logger := log.New(stderr, level, format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := &globals{
		ctx:      ctx,
		stdout:   stdout,
		stderr:   stderr,
		log:      logger,
		registry: metrics.NewRegistry(),
	}
	if err := kctx.Run(g); err != nil {
		logger.Error("command failed", "cmd", kctx.Command(), "err", err)
		return 1
	}
	return 0
}

type versionCmd struct{}

func (versionCmd) Run(g *globals) error {
	_, err := fmt.Fprintf(g.stdout, "rs255 %s (commit %s)\n", version, commit)
	return err
}
