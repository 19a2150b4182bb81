// Command klf200d bridges a Velux KLF-200 gateway to an HTTP/REST API,
// optionally rendering a live terminal view of known actuators alongside it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/veluxklf/klf200d/broker"
	"github.com/veluxklf/klf200d/detect"
	"github.com/veluxklf/klf200d/gateway"
	"github.com/veluxklf/klf200d/restapi"
	"github.com/veluxklf/klf200d/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "klf200d:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("klf200d", flag.ContinueOnError)
	address := fs.String("address", "", "KLF-200 gateway address (host:port)")
	password := fs.String("password", "", "KLF-200 gateway password")
	httpAddr := fs.String("http", ":52280", "REST API listen address")
	enableTUI := fs.Bool("tui", false, "run the embedded live actuator monitor alongside the REST API")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *address == "" {
		return errors.New("klf200d: -address is required")
	}
	if *password == "" {
		return errors.New("klf200d: -password is required")
	}

	level, err := parseLogLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b := broker.New(64)
	d := detect.New(5, time.Minute, 5*time.Minute)
	gw := gateway.New(*address, *password, b, gateway.WithLogger(logger), gateway.WithFloodDetector(d))

	logger.Info("klf200d: connecting", "address", *address)
	if err := gw.Connect(ctx); err != nil {
		return fmt.Errorf("klf200d: connect: %w", err)
	}
	defer gw.Close()

	if err := gw.EnableHouseStatusMonitor(ctx); err != nil {
		logger.Warn("klf200d: enable house status monitor failed", "error", err)
	}

	server := restapi.New(*httpAddr, gw, logger)
	serveErr := make(chan error, 1)
	go func() {
		if err := server.Serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	if *enableTUI {
		return runTUI(ctx, gw, b, server)
	}
	return waitForShutdown(ctx, server, serveErr, logger)
}

func runTUI(ctx context.Context, gw *gateway.Client, b *broker.Broker, server *restapi.Server) error {
	p := tea.NewProgram(tui.New(gw, b), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	return err
}

func waitForShutdown(ctx context.Context, server *restapi.Server, serveErr <-chan error, logger *slog.Logger) error {
	select {
	case <-ctx.Done():
		logger.Info("klf200d: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serveErr:
		return err
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("klf200d: unknown -log-level %q", s)
	}
}
