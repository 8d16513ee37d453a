package logger

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger our internal "singleton" wrapper around zerolog allowing us
// to redirect every logger in the process at once
type Logger struct {
	component string
}

var (
	// unexported "singleton" zerolog logger shared by every Logger
	base zerolog.Logger
	mux  sync.RWMutex
)

// init sets the internal "singleton" logger
func init() {
	base = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Caller().
		Timestamp().
		Logger()
}

// New returns the internal "singleton" logger
func New() Logger {
	return Logger{}
}

// GlobalSetLogFile set all loggers to log to file
func GlobalSetLogFile(f *os.File) {
	GlobalSetOutput(f)
}

// GlobalSetOutput set all loggers, including component loggers created
// earlier, to write to w
func GlobalSetOutput(w io.Writer) {
	mux.Lock()
	defer mux.Unlock()

	base = base.Output(w)
}

// Component returns a logger tagged with the given component name
func (l Logger) Component(name string) Logger {
	return Logger{component: name}
}

// current resolves the zerolog logger at log time so output changes made
// after this Logger was created still apply
func (l Logger) current() *zerolog.Logger {
	mux.RLock()
	zl := base
	mux.RUnlock()

	if l.component != "" {
		zl = zl.With().Str("component", l.component).Logger()
	}

	return &zl
}

// Info wrapper around zerolog Info
func (l Logger) Info() *zerolog.Event {
	return l.current().Info()
}

// Debug wrapper around zerolog Debug
func (l Logger) Debug() *zerolog.Event {
	return l.current().Debug()
}

// Warn wrapper around zerolog Warn
func (l Logger) Warn() *zerolog.Event {
	return l.current().Warn()
}

// Error wrapper around zerolog Error
func (l Logger) Error() *zerolog.Event {
	return l.current().Error()
}

// Fatal wrapper around zerolog Fatal
func (l Logger) Fatal() *zerolog.Event {
	return l.current().Fatal()
}
