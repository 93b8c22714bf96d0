package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.opentelemetry.io/otel"

	"github.com/tomz197/airhockey/internal/config"
	"github.com/tomz197/airhockey/internal/draw"
	"github.com/tomz197/airhockey/internal/loop/client"
)

func main() {
	settings, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := settings.Log.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	host, port := settings.SSH.Host, settings.SSH.Port
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config",
		"host", host, "port", port,
		"hostKeyPath", settings.SSH.HostKeyPath,
		"idleTimeout", settings.SSH.IdleTimeout,
		"workingDir", workingDir,
	)

	games := &gameHandler{
		settings: settings,
		logger:   logger,
		sessions: make(map[*client.Client]struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if settings.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(settings.SSH.HostKeyPath))
	}
	if settings.SSH.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(settings.SSH.IdleTimeout))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...", "sessions", games.active())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHandler runs an independent two-player match for every SSH session.
type gameHandler struct {
	settings config.Settings
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[*client.Client]struct{}
}

// middleware handles SSH sessions and runs the game client.
func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := g.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		c := client.NewClient(reader, sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Rules:        g.settings.Rules(),
			KeyHold:      g.settings.Match.KeyHold,
			KeyDelay:     g.settings.Match.KeyRepeatDelay,
			FPS:          g.settings.Match.FPS,
			Logger:       logger,
			Meter:        otel.Meter("github.com/tomz197/airhockey"),
		})

		g.track(c, true)
		if err := c.Run(); err != nil {
			logger.Error("Game error", "err", err)
		}
		g.track(c, false)

		m := c.Controller().Match()
		logger.Info("Session ended", "left", m.ScoreLeft, "right", m.ScoreRight)
		next(sess)
	}
}

func (g *gameHandler) track(c *client.Client, add bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if add {
		g.sessions[c] = struct{}{}
	} else {
		delete(g.sessions, c)
	}
}

func (g *gameHandler) active() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
