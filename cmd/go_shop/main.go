package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_shop/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("go_shop: %v", err)
	}
}
