package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"golang.org/x/term"

	"github.com/tomz197/airhockey/internal/config"
	"github.com/tomz197/airhockey/internal/loop/client"
)

func main() {
	settings, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger, closeLog, err := settings.Log.NewLogger(io.Discard, "game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(reader, os.Stdout, client.ClientOptions{
		Rules:    settings.Rules(),
		KeyHold:  settings.Match.KeyHold,
		KeyDelay: settings.Match.KeyRepeatDelay,
		FPS:      settings.Match.FPS,
		Logger:   logger,
		Meter:    otel.Meter("github.com/tomz197/airhockey"),
	})

	logger.Info("local game started")
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("local game ended")
}
