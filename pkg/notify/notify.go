// Package notify provides Notifier implementations for the terminal, the
// log and tests.
package notify

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// Terminal prints notices to a terminal, styled when the output supports it
type Terminal struct {
	out    io.Writer
	styled bool
	mu     sync.Mutex
}

// NewTerminal creates a Terminal writing to out. Styling is enabled only
// when out is a color-capable tty and NO_COLOR is unset.
func NewTerminal(out *os.File) *Terminal {
	return &Terminal{out: out, styled: supportsStyle(out)}
}

// NewPlain creates an unstyled Terminal writing to w
func NewPlain(w io.Writer) *Terminal {
	return &Terminal{out: w}
}

func supportsStyle(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).Profile != termenv.Ascii
}

// Notify writes message on its own line
func (t *Terminal) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.styled {
		_, _ = fmt.Fprintln(t.out, message)
		return
	}
	_, _ = fmt.Fprintf(t.out, "%s %s\n", prefixFor(message).Text, pterm.Info.MessageStyle.Sprint(message))
}

func prefixFor(message string) pterm.Prefix {
	switch {
	case strings.HasSuffix(message, "is not defined"), strings.Contains(message, "does not match at line"):
		return pterm.Warning.Prefix
	case strings.HasPrefix(message, "Failed"), strings.HasPrefix(message, "Variable file not found"):
		return pterm.Error.Prefix
	case message == "Substitution is done":
		return pterm.Success.Prefix
	default:
		return pterm.Info.Prefix
	}
}

// Log forwards notices to a zerolog logger at info level
type Log struct {
	logger zerolog.Logger
}

// NewLog creates a Log notifier for the named component
func NewLog(component string) *Log {
	return &Log{logger: logging.GetLogger(component)}
}

// Notify logs message
func (l *Log) Notify(message string) {
	l.logger.Info().Str("notice", message).Msg("Notice")
}

// Multi fans a notice out to several notifiers
type Multi []types.Notifier

// Notify forwards message to every notifier in order
func (m Multi) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}

// Recorder keeps every notice in memory
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Notify records message
func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the recorded notices in emission order
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent notice, or "" when none was recorded
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

// Reset discards recorded notices
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}

var (
	_ types.Notifier = (*Terminal)(nil)
	_ types.Notifier = (*Log)(nil)
	_ types.Notifier = Multi(nil)
	_ types.Notifier = (*Recorder)(nil)
)
