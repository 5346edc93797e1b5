package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"github.com/AJYORK88/ConnectSphere-Online/domain"
	"github.com/AJYORK88/ConnectSphere-Online/infrastructure/tcp"
	"github.com/AJYORK88/ConnectSphere-Online/internal"
	"github.com/AJYORK88/ConnectSphere-Online/moderation"
	"github.com/AJYORK88/ConnectSphere-Online/runtime"
	"github.com/AJYORK88/ConnectSphere-Online/runtime/workers"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run wires everything together and blocks until shutdown. Keeping the
// logic out of main ensures defers execute before the process exits and
// leaves main as the only caller of os.Exit.
func run() error {
	// 1. Configuration & logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Moderation
	replacement, err := config.ReplacementRune()
	if err != nil {
		return err
	}
	dictionary, err := moderation.DefaultDictionary()
	if err != nil {
		return fmt.Errorf("loading moderation dictionary: %w", err)
	}
	log.Info(fmt.Sprintf("%d censored words loaded [%s]",
		len(dictionary.Words), strings.Join(dictionary.Languages, ",")))
	moderator, err := moderation.NewModerator(dictionary.Words, replacement, log)
	if err != nil {
		return fmt.Errorf("building moderator: %w", err)
	}

	// 3. Chat state & router
	registry := runtime.NewRegistry()
	history := domain.NewHistory(config.HistoryLimit)
	router := runtime.NewRouter(log, registry, history, moderator, config.CommandBufferSize)

	// 4. Context & signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Bind the chat port. A bind failure is the one fatal error.
	listener, err := net.Listen("tcp", config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Addr(), err)
	}
	server := tcp.NewServer(log, listener, router)
	monitor := workers.NewHealthMonitorWorker(log, config.MetricInterval, router.Stats)

	if config.DebugPort > 0 {
		internal.StartDebugServer(log, config.DebugPort, "/inspect", history, router.Stats)
	}

	// 6. Supervision: blocks until the signal context is canceled and all
	// workers have stopped.
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(router, server, monitor)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
