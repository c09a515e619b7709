// Command scriptbox-raylib runs the behavior scene in a raylib window with a
// 3D view from the camera behavior.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/host/raylibhost"
)

func main() {
	var flags host.Flags
	flags.Register(flag.CommandLine)
	fps := flag.Int("fps", 60, "Target frames per second; one scheduler step per frame.")
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

	rlCfg := raylibhost.DefaultConfig()
	rlCfg.FPS = int32(*fps)

	if err := raylibhost.Run(rlCfg, cfg); err != nil {
		logger.Error("scriptbox-raylib exited", "error", err)
		os.Exit(1)
	}
}
