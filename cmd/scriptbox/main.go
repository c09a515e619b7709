// Command scriptbox runs the behavior scene in an ebiten window.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/host/ebitenhost"
)

func main() {
	var flags host.Flags
	flags.Register(flag.CommandLine)
	tps := flag.Int("tps", 60, "Scheduler steps per second.")
	inspect := flag.Bool("inspector", false, "Draw the ImGui inspector over the scene.")
	flag.Parse()

	logger, err := flags.Logger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := flags.Config(logger)
	stop, err := flags.ServeMirror(ctx, &cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	hostCfg := ebitenhost.DefaultConfig()
	hostCfg.TPS = *tps
	hostCfg.Inspector = *inspect

	if err := ebitenhost.Run(hostCfg, cfg); err != nil {
		logger.Error("scriptbox exited", "error", err)
		os.Exit(1)
	}
}
