// Command scriptbox-term runs the behavior scene in a terminal. Keys count
// as held while the terminal repeats them; drag with the mouse to look.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/scriptbridge/host"
	"github.com/plus3/scriptbridge/host/termhost"
)

func main() {
	var flags host.Flags
	flags.Register(flag.CommandLine)
	tps := flag.Int("tps", 30, "Scheduler steps per second.")
	hold := flag.Duration("hold", 150*time.Millisecond, "How long a key stays held after its last repeat.")
	sound := flag.Bool("sound", false, "Beep when a behavior fails.")
	logFile := flag.String("log", "scriptbox-term.log", "Log file; the terminal is busy drawing.")
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	logger, err := flags.Logger(f)
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}

	termCfg := termhost.DefaultConfig()
	termCfg.TPS = *tps
	termCfg.HoldWindow = *hold
	termCfg.Sound = *sound

	h, err := termhost.New(screen, termCfg, cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := h.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scriptbox-term exited", "error", err)
		os.Exit(1)
	}
}
