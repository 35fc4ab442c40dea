package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/golangdaddy/roadrush/pkg/server"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &server.Config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(ctx))
}
