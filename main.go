package main

import (
	"context"
	"echoeats/app/client/elevenlabs"
	"echoeats/app/config"
	"echoeats/app/server"
	"echoeats/app/service/chat"
	"echoeats/app/service/history"
	"echoeats/app/service/orders"
	"echoeats/app/service/ordersearch"
	"echoeats/app/util/mylog"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	mcpMode := flag.Bool("mcp", false, "serve the order search tool over MCP stdio instead of HTTP")
	flag.Parse()

	di := do.New()
	defer di.Shutdown()

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, elevenlabs.NewClient)
	do.Provide(di, orders.New)
	do.Provide(di, ordersearch.New)
	do.Provide(di, history.New)
	do.Provide(di, chat.New)
	do.Provide(di, server.New)
	do.Provide(di, server.NewMCP)

	if *mcpMode {
		if err = do.MustInvoke[*server.MCPServer](di).Run(); err != nil {
			log.Fatalf("mcp server failed: %v", err)
		}
		return
	}

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	g, gctx := errgroup.WithContext(appCtx)

	g.Go(func() error {
		return do.MustInvoke[*server.Service](di).Run(gctx)
	})

	if err = g.Wait(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
