package logging

import (
	"fmt"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Logger is the leveled logger used across soldocs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Provider hands out named loggers from one go-logger root.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a provider for level ("debug", "info", ...) and
// format ("console", "json" or "pretty").
func NewProvider(level, format string) (*Provider, error) {
	options := []glog.Option{}

	if lvl := normalizeLevel(level); lvl != "" {
		options = append(options, glog.WithLevel(lvl))
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", format)
	}

	return &Provider{root: glog.NewLogger(options...)}, nil
}

// Logger returns the child logger called name.
func (p *Provider) Logger(name string) Logger {
	if p == nil {
		return NoOp()
	}
	var inner glog.Logger
	if name = strings.TrimSpace(name); name == "" {
		inner = p.root
	} else {
		inner = p.root.GetLogger(name)
	}
	return inner
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}

type noop struct{}

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// NoOp returns a logger that discards everything.
func NoOp() Logger { return noop{} }
