package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/entap/expr/cli"
	"github.com/entap/expr/log"
)

func main() {
	if err := cli.Run(context.Background(), os.Exit, os.Args[1:]...); err != nil {
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
