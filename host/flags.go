package host

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/plus3/scriptbridge/bridge"
	"github.com/plus3/scriptbridge/bridge/remote"
	"github.com/plus3/scriptbridge/ecs"
	"github.com/plus3/scriptbridge/geom"
)

// Flags are the command line options every frontend shares.
type Flags struct {
	Width       uint
	Height      uint
	Behaviors   string
	SkipOnError bool
	Mirror      string
	LogLevel    string
}

// Register binds the flags on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	def := DefaultConfig()
	fs.UintVar(&f.Width, "width", uint(def.Resolution.Width), "Windowed width in pixels.")
	fs.UintVar(&f.Height, "height", uint(def.Resolution.Height), "Windowed height in pixels.")
	fs.StringVar(&f.Behaviors, "behaviors", strings.Join(def.Behaviors, ","), "Comma separated behaviors to spawn, one entity each.")
	fs.BoolVar(&f.SkipOnError, "skip-on-error", false, "Keep ticking behaviors whose Tick failed instead of deactivating them.")
	fs.StringVar(&f.Mirror, "mirror", "", "Serve native bridge traffic over websocket on this address, e.g. :8080.")
	fs.StringVar(&f.LogLevel, "log-level", "info", "Log level: debug, info, warn or error.")
}

// Logger builds a text logger on w at the requested level.
func (f *Flags) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// Config turns the flags into a session config.
func (f *Flags) Config(logger *slog.Logger) Config {
	cfg := DefaultConfig()
	cfg.Resolution = geom.Extent(uint32(f.Width), uint32(f.Height))
	cfg.Behaviors = strings.Split(f.Behaviors, ",")
	if f.SkipOnError {
		cfg.Policy = ecs.SkipStepOnError
	}
	cfg.Logger = logger
	return cfg
}

// ServeMirror, when a mirror address is set, wraps cfg's native side in a
// remote.Mirror and serves it until ctx is done. The returned stop shuts the
// server down and disconnects viewers.
func (f *Flags) ServeMirror(ctx context.Context, cfg *Config) (stop func(), err error) {
	if f.Mirror == "" {
		return func() {}, nil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ln, err := net.Listen("tcp", f.Mirror)
	if err != nil {
		return nil, fmt.Errorf("mirror: %w", err)
	}

	var mirror atomic.Pointer[remote.Mirror]
	cfg.Wrap = func(n bridge.Native) bridge.Native {
		m := remote.NewMirror(n, remote.WithLogger(logger))
		mirror.Store(m)
		return m
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		m := mirror.Load()
		if m == nil {
			http.Error(w, "session not started", http.StatusServiceUnavailable)
			return
		}
		m.ServeHTTP(w, r)
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Info("mirror listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("mirror stopped", "error", err)
		}
	}()

	return func() {
		if m := mirror.Load(); m != nil {
			m.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}, nil
}
