// Package main provides a CLI that replays recorded answers against a quiz.
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
	quizruncmd "github.com/louisbranch/praxis/internal/cmd/quizrun"
	"github.com/louisbranch/praxis/internal/platform/cmd"
	"github.com/louisbranch/praxis/internal/platform/config"
)

func main() {
	cfg, err := quizruncmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	log.SetPrefix("[QUIZRUN] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceQuizrun, func(ctx context.Context) error {
		return quizruncmd.Run(ctx, cfg, os.Stdout)
	})
	if errors.Is(err, quizruncmd.ErrNotPassed) {
		os.Exit(1)
	}
	if err != nil {
		config.Exitf("Error [%s]: %v", boundary.Classify(err).Code, err)
	}
}
