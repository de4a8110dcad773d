// shadowfov-server serves the field-of-view demo over SSH. Every connection
// gets its own map, cursor and view range. Build:
//
//	go build -o shadowfov-server ./cmd/server
//
// Usage:
//
//	./shadowfov-server [--config shadowfov.yaml] [--port 2222] [--key server_host_key]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"shadowfov/internal/config"
	internalssh "shadowfov/internal/ssh"
	"shadowfov/internal/view"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "shadowfov.yaml", "Path to the YAML config (defaults are used if absent)")
	port := flag.Int("port", 0, "SSH server port (overrides the config)")
	keyFile := flag.String("key", "", "Path to the PEM-encoded host key (overrides the config; auto-generated if absent)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is done or the listener fails.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: func(s gossh.Session) {
			handleSession(ctx, s, cfg, logger)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: the demo holds no user data.
		HostSigners: []gossh.Signer{signer},
	}

	g.Go(func() error {
		logger.Info("shadowfov SSH server listening", "addr", srv.Addr)
		logger.Info(fmt.Sprintf("connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", cfg.Server.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, gossh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	})
	return g.Wait()
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handleSession is the gliderlabs SSH handler for one connection.
// It blocks for the duration of the connection so the SSH session stays open.
func handleSession(ctx context.Context, s gossh.Session, cfg config.Config, logger *slog.Logger) {
	log := logger.With("user", sanitizeName(s.User()), "remote", s.RemoteAddr().String())

	tty, err := internalssh.NewSessionTty(s)
	if err != nil {
		fmt.Fprintf(s, "This demo requires a PTY. Connect with: ssh -t -p %d <host>\n", cfg.Server.Port)
		log.Info("rejected session", "error", err)
		return
	}

	term := tty.Term()
	if !allowedTerms[term] {
		log.Warn("unsupported TERM, using xterm-256color", "term", term)
		term = "xterm-256color"
	}

	screen, err := newScreen(tty, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.Warn("terminal setup failed", "error", err)
		return
	}
	defer screen.Fini()

	sess, err := view.New(screen, cfg, cfg.Map.NewRand(time.Now().UnixNano()), log)
	if err != nil {
		log.Error("view setup failed", "error", err)
		return
	}

	// End the session on disconnect or server shutdown, whichever comes first.
	sessCtx, cancel := context.WithCancel(s.Context())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := sess.Run(sessCtx); err != nil {
		log.Error("view session failed", "error", err)
	}
}

// termMu protects os.Setenv("TERM") around screen creation; sessions start
// concurrently.
var termMu sync.Mutex

// newScreen creates and initializes a tcell screen on tty for term.
func newScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	defer termMu.Unlock()

	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// allowedTerms lists the TERM values clients may select. Anything else
// falls back to xterm-256color so clients cannot make the server load
// arbitrary terminfo entries.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

// maxNameBytes bounds user names written to the log.
const maxNameBytes = 16

// sanitizeName drops non-printable runes from an SSH user name and cuts it
// to maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]byte, 0, maxNameBytes)
	for _, r := range name {
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			continue
		}
		if len(out)+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		out = utf8.AppendRune(out, r)
	}
	return string(out)
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
		logger.Warn("host key unreadable, generating a new one", "path", path)
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	pemBlock, err := xssh.MarshalPrivateKey(key, "shadowfov server")
	if err == nil {
		err = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600)
	}
	if err != nil {
		logger.Warn("could not save host key", "path", path, "error", err)
	}
	return signer, nil
}
