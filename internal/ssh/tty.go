// Package ssh adapts a gliderlabs SSH session to the tcell.Tty interface so
// every connection can drive its own tcell screen.
package ssh

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPTY is returned for sessions that did not request a pseudo-terminal.
var ErrNoPTY = errors.New("ssh session has no pty")

// SessionTty implements tcell.Tty on top of one SSH session.
type SessionTty struct {
	session gossh.Session
	term    string
	winCh   <-chan gossh.Window

	mu     sync.Mutex
	window gossh.Window
	cb     func() // resize callback registered by tcell

	watch sync.Once
}

// NewSessionTty wraps s. It fails with ErrNoPTY when the client did not
// ask for a terminal (ssh -T, or a command without -t).
func NewSessionTty(s gossh.Session) (*SessionTty, error) {
	pty, winCh, ok := s.Pty()
	if !ok {
		return nil, ErrNoPTY
	}
	return &SessionTty{
		session: s,
		term:    pty.Term,
		window:  pty.Window,
		winCh:   winCh,
	}, nil
}

// Term returns the TERM value the client sent with its pty request.
func (t *SessionTty) Term() string { return t.term }

// Read reads keyboard and mouse input from the client.
func (t *SessionTty) Read(b []byte) (int, error) { return t.session.Read(b) }

// Write sends rendered output to the client.
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }

// Close closes the session channel.
func (t *SessionTty) Close() error { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel is opened and torn down by
// the server handler.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the client's current terminal size.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window-change requests. The first call
// starts draining the window channel for the life of the session; later
// calls only replace the callback.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.watch.Do(func() { go t.watchResize() })
}

func (t *SessionTty) watchResize() {
	for win := range t.winCh {
		t.mu.Lock()
		t.window = win
		cb := t.cb
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
