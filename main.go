package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abiiranathan/imgextract/cli"
)

// Default configuration for the CLI
var config = cli.DefaultConfig

func runExtract() {
	logger := newLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := cli.Extract(ctx, &config, logger); err != nil {
		stop()
		log.Fatalln(err)
	}
}

func runList() {
	if err := cli.List(context.Background(), &config, os.Stdout); err != nil {
		log.Fatalln(err)
	}
}

func newLogger() *slog.Logger {
	level, err := cli.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatalln(err)
	}
	return cli.NewLogger(os.Stderr, level)
}

func main() {
	log.SetPrefix("[imgextract]: ")
	log.SetFlags(log.Lshortfile)

	// The positional form "<db_file> <out_folder>" maps onto the extract subcommand.
	args, ok := cli.NormalizeArgs(os.Args)
	if !ok {
		fmt.Println(cli.Usage(os.Args[0]))
		return
	}

	// Parse the command line arguments
	ctx := cli.DefineFlags(&config, runExtract, runList)
	subcmd, err := ctx.Parse(args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	// Run the subcommand
	subcmd.Handler()
}
