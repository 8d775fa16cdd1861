package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studio/client"
	"studio/common"
	"studio/config"
	"studio/studio"
	"studio/tui"

	tea "github.com/charmbracelet/bubbletea"
)

// healthTimeout bounds the startup reachability check
const healthTimeout = 5 * time.Second

func main() {
	config.LoadEnv()

	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command-line flags
	flag.StringVar(&cfg.BaseURL, "url", cfg.BaseURL, "Studio backend URL")
	flag.StringVar(&cfg.Voice, "voice", cfg.Voice, "Narration voice")
	flag.StringVar(&cfg.Player, "player", cfg.Player, "Command used to open media, e.g. \"mpv\"")
	flag.Parse()

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := common.NewLogger(cfg.AppEnv, logFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := client.NewClient(cfg.BaseURL)
	healthCtx, healthCancel := context.WithTimeout(ctx, healthTimeout)
	if err := api.Health(healthCtx); err != nil {
		logger.Warn().Err(err).Str("url", api.BaseURL()).Msg("backend is not healthy")
	}
	healthCancel()

	ctrl := studio.NewController(api, studio.Options{
		TickInterval: cfg.TickInterval,
		Logger:       &logger,
	})

	m := tui.NewModel(ctx, ctrl, api, cfg, tui.NewPlayer(cfg.Player), logger)
	program := tea.NewProgram(m, tea.WithAltScreen())

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
		program.Quit()
	}()

	logger.Info().Str("url", api.BaseURL()).Msg("🚀 studio client started")
	if _, err := program.Run(); err != nil {
		logger.Error().Err(err).Msg("program exited with error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
