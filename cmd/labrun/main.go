// Package main provides a CLI that runs a code submission against a lab's
// test suite.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/praxis/internal/assessment/boundary"
	labruncmd "github.com/louisbranch/praxis/internal/cmd/labrun"
	"github.com/louisbranch/praxis/internal/platform/cmd"
	"github.com/louisbranch/praxis/internal/platform/config"
)

func main() {
	cfg, err := labruncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[LABRUN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceLabrun, func(ctx context.Context) error {
		return labruncmd.Run(ctx, cfg, os.Stdout)
	})
	if errors.Is(err, labruncmd.ErrTestsFailed) {
		os.Exit(1)
	}
	if err != nil {
		config.Exitf("Error [%s]: %v", boundary.Classify(err).Code, err)
	}
}
