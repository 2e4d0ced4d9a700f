// Package logging wires slog for the command line tools.
package logging

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LevelFlag is a flag.Value selecting the slog level by name.
type LevelFlag struct {
	Value slog.Level
}

func (l *LevelFlag) String() string {
	return l.Value.String()
}

func (l *LevelFlag) Set(value string) error {
	m := map[string]slog.Level{"DEBUG": slog.LevelDebug, "INFO": slog.LevelInfo, "WARN": slog.LevelWarn, "ERROR": slog.LevelError}
	v, ok := m[strings.ToUpper(value)]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.Value = v
	return nil
}

// Flags are the logging flags shared by all commands.
type Flags struct {
	Level LevelFlag
	File  string
}

// Register defines -loglevel and -logfile on fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	f.Level.Value = slog.LevelInfo
	fs.Var(&f.Level, "loglevel", "log level: DEBUG, INFO, WARN or ERROR")
	fs.StringVar(&f.File, "logfile", "", "write logs to this rotating file instead of stderr")
}

// Setup installs the default slog logger. It returns a closer for the log file, if any.
func Setup(f Flags) (io.Closer, error) {
	var w io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if f.File != "" {
		if err := os.MkdirAll(filepath.Dir(f.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create dir for %s: %w", f.File, err)
		}
		lj := &lumberjack.Logger{
			Filename:   f.File,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		}
		w, closer = lj, lj
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: f.Level.Value})))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
