// Package logging is the process-wide diagnostic side channel. It carries
// per-category verbosity levels and a selectable output target, and has no
// interaction with the capture state machine: every call here is
// fire-and-forget configuration.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/syslog"
	"os"
	"sync"
)

// Severity orders log messages from chattiest to fatal.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
	SeverityFatal
)

var severityNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (s Severity) String() string {
	if s < SeverityDebug || s > SeverityFatal {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// ParseSeverity maps a level name ("INFO", "warn", ...) to its Severity.
func ParseSeverity(name string) (Severity, bool) {
	for i, n := range severityNames {
		if n == name || lower(n) == name {
			return Severity(i), true
		}
	}
	return SeverityInfo, false
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger. Tests or production code can redirect or
// mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
// Like the category levels, this is setup-time configuration; call it before
// capture traffic starts.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

var (
	mu         sync.Mutex
	categories = map[string]*Category{}
	wildcard   = SeverityInfo
	muted      bool
	sysWriter  *syslog.Writer
)

// Category is a named logging domain with its own verbosity threshold.
// Categories are process-wide: NewCategory returns the same handle for the
// same name.
type Category struct {
	name  string
	level Severity
}

// NewCategory returns the category handle for name, creating it at the
// current wildcard level if it does not exist yet.
func NewCategory(name string) *Category {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := categories[name]; ok {
		return c
	}
	c := &Category{name: name, level: wildcard}
	categories[name] = c
	return c
}

// Name returns the category name.
func (c *Category) Name() string { return c.name }

// Printf emits a message at the given severity if it clears the category's
// threshold. Fatal messages always emit.
func (c *Category) Printf(sev Severity, format string, v ...interface{}) {
	mu.Lock()
	level := c.level
	mutedNow := muted
	sys := sysWriter
	mu.Unlock()

	if sev < level && sev != SeverityFatal {
		return
	}
	line := fmt.Sprintf("%s %s: %s", sev, c.name, fmt.Sprintf(format, v...))
	if sys != nil {
		switch sev {
		case SeverityDebug:
			sys.Debug(line) //nolint:errcheck
		case SeverityInfo:
			sys.Info(line) //nolint:errcheck
		case SeverityWarn:
			sys.Warning(line) //nolint:errcheck
		default:
			sys.Err(line) //nolint:errcheck
		}
		return
	}
	if mutedNow {
		return
	}
	Logf("%s", line)
}

// Debugf logs at debug severity.
func (c *Category) Debugf(format string, v ...interface{}) {
	c.Printf(SeverityDebug, format, v...)
}

// Infof logs at info severity.
func (c *Category) Infof(format string, v ...interface{}) {
	c.Printf(SeverityInfo, format, v...)
}

// Warnf logs at warn severity.
func (c *Category) Warnf(format string, v ...interface{}) {
	c.Printf(SeverityWarn, format, v...)
}

// Errorf logs at error severity.
func (c *Category) Errorf(format string, v ...interface{}) {
	c.Printf(SeverityError, format, v...)
}

// SetLevel sets the verbosity threshold of one category by name, or of every
// category (current and future) when name is "*".
func SetLevel(name string, sev Severity) {
	mu.Lock()
	defer mu.Unlock()
	if name == "*" {
		wildcard = sev
		for _, c := range categories {
			c.level = sev
		}
		return
	}
	if c, ok := categories[name]; ok {
		c.level = sev
		return
	}
	categories[name] = &Category{name: name, level: sev}
}

// Target selects where log output goes.
type Target int

const (
	// TargetNone discards all output.
	TargetNone Target = iota
	// TargetSyslog sends output to the system logger.
	TargetSyslog
	// TargetStream sends output through the package logger to the stream
	// configured by SetStream.
	TargetStream
)

// SetTarget selects the logging destination.
func SetTarget(t Target) error {
	mu.Lock()
	defer mu.Unlock()
	switch t {
	case TargetNone:
		muted = true
		sysWriter = nil
		return nil
	case TargetSyslog:
		w, err := syslog.New(syslog.LOG_INFO|syslog.LOG_USER, "aperture")
		if err != nil {
			return fmt.Errorf("failed to open syslog: %w", err)
		}
		muted = false
		sysWriter = w
		return nil
	case TargetStream:
		muted = false
		sysWriter = nil
		return nil
	default:
		return fmt.Errorf("unknown logging target %d", t)
	}
}

// SetStream directs output to w through a stdlib logger. Passing nil restores
// stderr.
func SetStream(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l := log.New(w, "", log.LstdFlags)
	SetLogger(l.Printf)
	mu.Lock()
	muted = false
	sysWriter = nil
	mu.Unlock()
}

// SetFile directs output to the named file, appending.
func SetFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	SetStream(f)
	return nil
}
