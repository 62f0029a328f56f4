// Package main provides a CLI that manages the quiz and lab content catalog.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/praxis/internal/assessment/boundary"
	catalogcmd "github.com/louisbranch/praxis/internal/cmd/catalog"
	"github.com/louisbranch/praxis/internal/platform/cmd"
	"github.com/louisbranch/praxis/internal/platform/config"
)

func main() {
	cfg, err := catalogcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[CATALOG] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceCatalog, func(ctx context.Context) error {
		return catalogcmd.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error [%s]: %v", boundary.Classify(err).Code, err)
	}
}
