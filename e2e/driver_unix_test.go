//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/creack/pty"
)

// keep the last MiB of terminal output
const outputLimit = 1 << 20

var binPath = "vselect_e2e"

// Keys as the terminal sends them
const (
	KeyEnter = "\r"
	KeyCtrlC = "\x03"
	KeyCtrlF = "\x06"
	KeyEsc   = "\x1b"
	KeySpace = " "
	KeyDown  = "\x1b[B"
	KeyEnd   = "\x1b[F"
	KeyQuit  = "q"
	KeyHelp  = "?"
)

// plain drops escape sequences and carriage returns
func plain(s string) string {
	return strings.ReplaceAll(ansi.Strip(s), "\r", "")
}

// terminalLog collects everything the app writes to its terminal
type terminalLog struct {
	mu   sync.Mutex
	data []byte
}

func (l *terminalLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = append(l.data, p...)
	if over := len(l.data) - outputLimit; over > 0 {
		l.data = append(l.data[:0:0], l.data[over:]...)
	}
	return len(p), nil
}

func (l *terminalLog) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return string(l.data)
}

// Driver runs the vselect binary in a pseudo terminal and scripts it
type Driver struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string
	out       terminalLog
	done      chan struct{}
	exitErr   error
}

// NewDriver creates a driver; the app starts with StartApp
func NewDriver(t *testing.T) *Driver {
	return &Driver{t: t}
}

// StartApp launches vselect with args in a 120x40 terminal
func (tf *Driver) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	if tf.workspace != "" {
		// config and log file land here
		tf.cmd.Dir = tf.workspace
	}
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"VSELECT_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start app in pty: %w", err)
	}
	tf.pty = f

	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := f.Read(buf)
			if n > 0 {
				tf.out.Write(buf[:n])
			}
			if err != nil {
				return
			}
		}
	}()

	tf.done = make(chan struct{})
	cmd := tf.cmd
	go func() {
		tf.exitErr = cmd.Wait()
		close(tf.done)
	}()
	return nil
}

// WaitExit waits up to timeout for the app to stop and returns its exit
// error when it did
func (tf *Driver) WaitExit(timeout time.Duration) (bool, error) {
	select {
	case <-tf.done:
		return true, tf.exitErr
	case <-time.After(timeout):
		return false, nil
	}
}

// SendKeys writes keys to the app's terminal
func (tf *Driver) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// SendCtrlC interrupts the app
func (tf *Driver) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }

// Enter opens the panel or picks the active option
func (tf *Driver) Enter() error { return tf.SendKeys(KeyEnter) }

// Select toggles the active option with space
func (tf *Driver) Select() error { return tf.SendKeys(KeySpace) }

// Down moves to the next option
func (tf *Driver) Down() error { return tf.SendKeys(KeyDown) }

// Escape closes the panel or leaves the search box
func (tf *Driver) Escape() error { return tf.SendKeys(KeyEsc) }

// Search opens the search box of the open panel
func (tf *Driver) Search() error { return tf.SendKeys(KeyCtrlF) }

// Help opens the help pager
func (tf *Driver) Help() error { return tf.SendKeys(KeyHelp) }

// Quit presses q
func (tf *Driver) Quit() error { return tf.SendKeys(KeyQuit) }

// PressQuit is Quit, for scripts that read better with it
func (tf *Driver) PressQuit() error { return tf.Quit() }

// Ready waits for the app's ready marker
func (tf *Driver) Ready() bool {
	tf.t.Helper()
	return tf.OutputContains("__READY__", 5*time.Second)
}

// SeePlain waits for text to show up in the plain output
func (tf *Driver) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(text, 3*time.Second)
}

// WaitForStatusMessage waits for the status line to show message
func (tf *Driver) WaitForStatusMessage(message string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.OutputContainsPlain(message, timeout)
}

// OutputContains waits for text in the raw output
func (tf *Driver) OutputContains(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, text) }, timeout)
}

// OutputContainsPlain waits for text in the output without escape sequences
func (tf *Driver) OutputContainsPlain(text string, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(plain(s), text)
	}, timeout)
}

// WaitFor polls the raw output until pred holds or timeout passes
func (tf *Driver) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			tf.t.Logf("output tail:\n%s", tail(tf.SnapshotPlain(), 2048))
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns the raw output so far
func (tf *Driver) Snapshot() string {
	return tf.out.String()
}

// SnapshotPlain returns the output so far without escape sequences
func (tf *Driver) SnapshotPlain() string {
	return plain(tf.Snapshot())
}

// Cleanup closes the terminal and stops the app
func (tf *Driver) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		tf.WaitExit(2 * time.Second)
		tf.cmd = nil
	}
}

func tail(s string, n int) string {
	if len(s) > n {
		return s[len(s)-n:]
	}
	return s
}
